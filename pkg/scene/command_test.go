package scene

import (
	"testing"

	"github.com/trigrid/trigrid/pkg/math3d"
)

func TestCommandsSatisfyInterface(t *testing.T) {
	var cmds = []Command{
		Rotate{Target: 0, Axis: math3d.Up(), Angle: 1},
		MoveToward{Target: 0, Dst: math3d.Zero3(), Step: 1},
		Scale{Target: 0, Factor: math3d.V3(1, 1, 1)},
	}
	if len(cmds) != 3 {
		t.Fatalf("expected all three command kinds to satisfy Command, got %d", len(cmds))
	}
}

func TestAttachAppendsCallback(t *testing.T) {
	d := NewDriver()
	d.Attach(Startup, Rotate{Target: 0, Axis: math3d.Up(), Angle: 1})
	d.Attach(Continuous, Scale{Target: 0, Factor: math3d.V3(1, 1, 1)})

	if len(d.Callbacks) != 2 {
		t.Fatalf("expected 2 callbacks, got %d", len(d.Callbacks))
	}
	if d.Callbacks[0].Kind != Startup || d.Callbacks[1].Kind != Continuous {
		t.Errorf("callbacks were not tagged with the kind they were attached under")
	}
}
