// trigrid - Terminal 3D Model Viewer
// Renders a mesh directory (OBJ+MTL) or a glTF/GLB file to the
// terminal as 24-bit ANSI color blocks.
//
// Controls:
//
//	Mouse drag  - Orbit the camera (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S/A/D     - Pitch and yaw
//	Space       - Apply random impulse
//	R           - Reset view
//	M           - Cycle render mode (shaded/wireframe/gouraud)
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/trigrid/trigrid/internal/backend"
	"github.com/trigrid/trigrid/pkg/math3d"
	"github.com/trigrid/trigrid/pkg/models"
	"github.com/trigrid/trigrid/pkg/render"
	"github.com/trigrid/trigrid/pkg/scene"
)

var (
	targetFPS int
	bgColor   string
)

func main() {
	cmd := &cobra.Command{
		Use:   "trigrid <model.obj-dir|model.glb|model.gltf>",
		Short: "Terminal 3D Model Viewer",
		Long: `trigrid - Terminal 3D Model Viewer

Renders a triangle mesh to the terminal using 24-bit ANSI colors.

Controls:
  Mouse drag  - Orbit the camera
  Scroll      - Zoom in/out
  W/S/A/D     - Pitch and yaw
  Space       - Random spin
  R           - Reset view
  M           - Cycle render mode (shaded/wireframe/gouraud)
  ?           - Toggle HUD overlay
  Esc         - Quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0])
		},
	}

	cmd.Flags().IntVar(&targetFPS, "fps", 60, "Target FPS")
	cmd.Flags().StringVar(&bgColor, "bg", "30,30,40", "Background color (R,G,B)")

	infoCmd := &cobra.Command{
		Use:   "info <model.obj-dir|model.glb|model.gltf>",
		Short: "Display model information",
		Long:  "Display detailed information about a mesh: format, polygon count, vertex count, and bounding box.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}
	cmd.AddCommand(infoCmd)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadMesh loads path as a glTF/GLB file if its extension says so,
// otherwise treats it as a directory to hand to models.LoadMeshDir.
// glTF/GLB files carry at most one embedded texture in this viewer; if
// present it's decoded and attached as the mesh's diffuse map, since
// models.GLTFLoader otherwise returns bare geometry plus a default
// material.
func loadMesh(path string) (*models.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".glb", ".gltf":
		mesh, texImg, err := models.LoadGLBWithTexture(path)
		if err != nil {
			return nil, err
		}
		if texImg != nil && len(mesh.Materials) > 0 {
			mesh.Materials[0].DiffuseTex = models.TextureFromImage(texImg)
		}
		return mesh, nil
	default:
		return models.LoadMeshDir(path, models.NewImageProvider(), models.LoadOptions{})
	}
}

func runInfo(path string) error {
	mesh, err := loadMesh(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	mesh.CalculateBounds()
	size := mesh.Size()
	center := mesh.Center()

	fmt.Printf("Name:       %s\n", filepath.Base(path))
	fmt.Printf("Vertices:   %d\n", mesh.VertexCount())
	fmt.Printf("Triangles:  %d\n", mesh.TriangleCount())
	fmt.Printf("Materials:  %d\n", len(mesh.Materials))

	if ext := strings.ToLower(filepath.Ext(path)); ext == ".glb" || ext == ".gltf" {
		_, textures, err := models.LoadGLTFWithTextures(path)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		fmt.Printf("Embedded textures: %d\n", len(textures))
	}

	fmt.Println()
	fmt.Printf("Bounds Min: (%.3f, %.3f, %.3f)\n", mesh.BoundsMin.X, mesh.BoundsMin.Y, mesh.BoundsMin.Z)
	fmt.Printf("Bounds Max: (%.3f, %.3f, %.3f)\n", mesh.BoundsMax.X, mesh.BoundsMax.Y, mesh.BoundsMax.Z)
	fmt.Printf("Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)

	return nil
}

// orbitAxis tracks one angular degree of freedom with harmonica
// spring decay, the same shape as the teacher's RotationAxis but
// applied to the camera's look direction instead of the mesh.
type orbitAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

func newOrbitAxis(fps int) orbitAxis {
	return orbitAxis{velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *orbitAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// orbitState holds the camera's free-look pitch/yaw with spring decay.
type orbitState struct {
	Pitch, Yaw orbitAxis
	fps        int
}

func newOrbitState(fps int) *orbitState {
	return &orbitState{Pitch: newOrbitAxis(fps), Yaw: newOrbitAxis(fps), fps: fps}
}

func (o *orbitState) Update() {
	o.Pitch.Update()
	o.Yaw.Update()
}

func (o *orbitState) ApplyImpulse(pitch, yaw float64) {
	o.Pitch.Velocity += pitch
	o.Yaw.Velocity += yaw
}

func (o *orbitState) Reset() {
	o.Pitch = newOrbitAxis(o.fps)
	o.Yaw = newOrbitAxis(o.fps)
}

var (
	hudStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0"))
	hudDim    = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("250")).Background(lipgloss.Color("0"))
	hudAccent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("122")).Background(lipgloss.Color("0"))
)

// renderMode selects which draw path produces each frame. shadedMode
// is the default full Pipeline (Blinn-Phong, z-buffer, perspective
// texturing); wireframeMode and gouraudMode instead go through the
// legacy Rasterizer/Wireframe draw path (rasterizer.go, wireframe.go)
// as a cheaper secondary renderer.
type renderMode int

const (
	shadedMode renderMode = iota
	wireframeMode
	gouraudMode
	renderModeCount
)

func (m renderMode) String() string {
	switch m {
	case wireframeMode:
		return "wireframe"
	case gouraudMode:
		return "gouraud"
	default:
		return "shaded"
	}
}

// renderLegacy draws mesh through the legacy Rasterizer/Wireframe
// path instead of render.Pipeline, then repackages the resulting
// Framebuffer as a Frame so internal/backend.Encode can still
// transport it. Both Wireframe.DrawMesh and Rasterizer's Gouraud
// methods reject the whole mesh against the camera's frustum before
// visiting a single triangle, since *models.Mesh implements
// render.BoundedMeshRenderer.
func renderLegacy(mode renderMode, display *scene.Display, mesh *models.Mesh) *render.Frame {
	bg := render.RGB(
		uint8(clamp01(display.Background.X)*255),
		uint8(clamp01(display.Background.Y)*255),
		uint8(clamp01(display.Background.Z)*255),
	)
	fb := render.NewFramebuffer(display.Width, display.Height)
	fb.Clear(bg)

	lightDir := math3d.V3(0, -1, 0)
	if len(display.Lights) > 0 {
		lightDir = display.Lights[0].Position.Scale(-1).Normalize()
	}

	switch mode {
	case wireframeMode:
		wf := render.NewWireframe(display.Camera, fb)
		wf.DrawMesh(mesh, render.ColorGreen)
	case gouraudMode:
		r := render.NewRasterizer(display.Camera, fb)
		mat := mesh.GetMaterial(0)
		if mat == nil {
			def := models.DefaultMaterial()
			mat = &def
		}
		diffuse := render.RGB(
			uint8(clamp01(mat.Diffuse.X)*255),
			uint8(clamp01(mat.Diffuse.Y)*255),
			uint8(clamp01(mat.Diffuse.Z)*255),
		)
		if tex := render.TextureFromModel(mat.DiffuseTex); tex != nil {
			r.DrawMeshTexturedGouraud(mesh, math3d.Identity(), tex, lightDir)
		} else {
			r.DrawMeshGouraud(mesh, math3d.Identity(), diffuse, lightDir)
		}
	}

	return fb.ToFrame(bg)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// renderHUD draws a one-line status bar on row 1 using lipgloss
// styling, overwriting whatever the renderer wrote there.
func renderHUD(width int, name string, tris int, fps float64, show bool, mode renderMode) string {
	if !show {
		return "\x1b[1;1H\x1b[2K"
	}
	left := hudAccent.Render(fmt.Sprintf(" %.0f FPS ", fps))
	mid := hudStyle.Render(fmt.Sprintf(" %s ", name))
	right := hudDim.Render(fmt.Sprintf(" %d tris · %s ", tris, mode))
	line := left + mid + right
	if lipgloss.Width(line) < width {
		line += strings.Repeat(" ", width-lipgloss.Width(line))
	}
	return "\x1b[1;1H\x1b[2K" + line
}

func runRender(path string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	mesh, err := loadMesh(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	mesh.CalculateBounds()

	// Center and normalize scale so the model fills the view regardless
	// of its native units.
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 2.0 / maxDim
		transform := math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Scale(-1)))
		if err := mesh.Transform(transform); err != nil {
			return fmt.Errorf("normalize model: %w", err)
		}
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")

	display := scene.NewDisplay(width, height)
	display.AddMesh(mesh)
	display.AddLight(scene.NewLight(math3d.V3(3, 4, 3), math3d.V3(1, 1, 1), 1.5, 10))
	display.Background = math3d.V3(float64(bgR)/255, float64(bgG)/255, float64(bgB)/255)
	display.Camera.SetAspectRatio(float64(width) / float64(height) / 2)
	display.Camera.SetFOV(math.Pi / 3)
	display.Camera.SetClipPlanes(0.1, 100)

	driver := scene.NewDriver()

	cameraDist := 5.0
	display.Camera.SetPosition(math3d.V3(0, 0, cameraDist))
	display.Camera.LookAt(math3d.V3(0, 0, 0))

	orbit := newOrbitState(targetFPS)
	showHUD := true
	mode := shadedMode

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	inputTorque := struct{ pitch, yaw float64 }{}
	const torqueStrength = 3.0

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				display.Width, display.Height = width, height
				display.Camera.SetAspectRatio(float64(width) / float64(height) / 2)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("r"):
					orbit.Reset()
					cameraDist = 5.0
					display.Camera.SetPosition(math3d.V3(0, 0, cameraDist))
					display.Camera.LookAt(math3d.V3(0, 0, 0))
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("space"):
					orbit.ApplyImpulse((rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5)
				case ev.MatchString("+", "="):
					cameraDist = math.Max(1, cameraDist-0.5)
				case ev.MatchString("-", "_"):
					cameraDist = math.Min(20, cameraDist+0.5)
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					showHUD = !showHUD
				case ev.MatchString("m"):
					mode = (mode + 1) % renderModeCount
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					orbit.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraDist = math.Max(1, cameraDist-0.5)
				case uv.MouseWheelDown:
					cameraDist = math.Min(20, cameraDist+0.5)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(targetFPS)
	lastFrame := time.Now()
	var fps float64
	fpsFrames := 0
	fpsTime := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		orbit.ApplyImpulse(inputTorque.pitch*dt, inputTorque.yaw*dt)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		orbit.Update()

		eye := math3d.V3(
			cameraDist*math.Sin(orbit.Yaw.Position)*math.Cos(orbit.Pitch.Position),
			cameraDist*math.Sin(orbit.Pitch.Position),
			cameraDist*math.Cos(orbit.Yaw.Position)*math.Cos(orbit.Pitch.Position),
		)
		display.Camera.SetPosition(eye)
		display.Camera.LookAt(math3d.V3(0, 0, 0))

		var frame *render.Frame
		if mode == shadedMode {
			frame, err = driver.Tick(display)
			if err != nil {
				cleanup()
				return fmt.Errorf("render: %w", err)
			}
		} else {
			frame = renderLegacy(mode, display, mesh)
		}

		os.Stdout.Write(backend.Encode(frame))
		fmt.Fprint(os.Stdout, renderHUD(width, filepath.Base(path), mesh.TriangleCount(), fps, showHUD, mode))

		fpsFrames++
		if elapsed := time.Since(fpsTime); elapsed >= time.Second {
			fps = float64(fpsFrames) / elapsed.Seconds()
			fpsFrames = 0
			fpsTime = time.Now()
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
