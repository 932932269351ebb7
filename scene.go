package chart

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, input state, and
// render buffers. Charts attach their root nodes beneath Scene.Root.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	// ScreenshotDir receives queued snapshots; DefaultScreenshotDir if empty.
	ScreenshotDir string

	// Render state
	commands []RenderCommand
	mesh     meshBuilder

	// Input state
	handlers    handlerRegistry
	pointers    [maxPointers]pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent
	liveInput   bool // read the real mouse; set by Run
	testRunner  *TestRunner

	screenshotQueue []string

	// cursor is the shape requested by the hovered node this frame.
	cursor        CursorShape
	appliedCursor CursorShape

	updateFunc func() error
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:     root,
		commands: make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetUpdateFunc sets a callback invoked at the end of every Update, after
// input and animation. Chart hosts use it to drive Tick.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update advances animations, processes input, and applies the hovered
// node's cursor. Called once per tick by Run.
func (s *Scene) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.step(dt)
	if s.cursor != s.appliedCursor {
		ebiten.SetCursorShape(ebitenCursor(s.cursor))
		s.appliedCursor = s.cursor
	}
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// step is one frame of scene simulation without touching the window.
func (s *Scene) step(dt float32) {
	updateTweens(s.root, dt)
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
}

// Cursor returns the cursor shape requested by the currently hovered node.
func (s *Scene) Cursor() CursorShape {
	return s.cursor
}

func ebitenCursor(c CursorShape) ebiten.CursorShapeType {
	if c == CursorPointer {
		return ebiten.CursorShapePointer
	}
	return ebiten.CursorShapeDefault
}

// Draw traverses the scene tree, emits render commands, and submits them to
// the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.buildCommands()
	s.submit(screen)
	s.flushScreenshots(screen)

	if s.debug {
		Logger().Debug("chart: frame",
			slog.Int("commands", len(s.commands)),
			slog.Int("vertices", len(s.mesh.verts)),
			slog.Duration("elapsed", time.Since(t0)))
	}
}

// buildCommands refreshes world transforms and rebuilds the command list.
func (s *Scene) buildCommands() {
	s.commands = s.commands[:0]
	s.mesh.verts = s.mesh.verts[:0]
	s.mesh.inds = s.mesh.inds[:0]
	updateWorldTransform(s.root, 0, 0, 1, false)
	treeOrder := 0
	s.traverse(s.root, &treeOrder)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
