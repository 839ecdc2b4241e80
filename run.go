package lattice

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // texture files
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
)

// FontFile names a JSON glyph map under RunConfig.FontPath.
type FontFile struct {
	GlyphMap string
	Options  BitmapFontOptions
}

// RunConfig configures Run and NewGame.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial window size in device pixels.
	Width, Height int
	// Scale is the GUI scale. Zero means 1.
	Scale float64
	// TPS is the tick rate. Zero means 60.
	TPS int
	// FontPath, ShaderPath and TexturePath are the directories fonts,
	// shaders and textures are read from. They are exposed as the host
	// parameters font_path, shader_path and texture_path.
	FontPath    string
	ShaderPath  string
	TexturePath string
	// Textures lists image files under TexturePath to register as atlas
	// layers, keyed by file name.
	Textures []string
	// Fonts lists bitmap fonts to load, by key. If no "default" font is
	// given, the built-in basic font is registered under that key.
	Fonts map[string]FontFile
	// KeyRepeatDelay is the number of ticks a key is held before the first
	// key_repeat. KeyRepeatInterval is the number of ticks between repeats.
	KeyRepeatDelay    int
	KeyRepeatInterval int
	// TileSize is the atlas layer size. Zero selects DefaultTileSize.
	TileSize Vec2
	// Assets, if set, is the file system paths are resolved in. Otherwise
	// the OS file system is used.
	Assets fs.FS
	// Debug enables per-render stats logging.
	Debug bool
}

func (cfg RunConfig) withDefaults() RunConfig {
	if cfg.Title == "" {
		cfg.Title = "lattice"
	}
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.KeyRepeatDelay <= 0 {
		cfg.KeyRepeatDelay = 24
	}
	if cfg.KeyRepeatInterval <= 0 {
		cfg.KeyRepeatInterval = 4
	}
	if cfg.TileSize == (Vec2{}) {
		cfg.TileSize = DefaultTileSize
	}
	return cfg
}

// Game hosts a Composite in an Ebitengine loop. It implements both
// ebiten.Game and Host.
type Game struct {
	cfg       RunConfig
	params    *Params
	renderer  *EbitenRenderer
	composite *Composite

	input     inputState
	listeners []func(Event)
	injected  []Event

	viewport Vec2
	frame    int
	initial  Layer
	err      error
}

// NewGame creates the renderer, loads the configured textures and fonts,
// and builds a composite hosted by the returned Game.
func NewGame(cfg RunConfig) (*Game, error) {
	cfg = cfg.withDefaults()
	g := &Game{
		cfg:      cfg,
		params:   NewParams(),
		viewport: Vec2{float64(cfg.Width), float64(cfg.Height)},
		input: inputState{repeat: keyRepeat{
			delay:    cfg.KeyRepeatDelay,
			interval: cfg.KeyRepeatInterval,
		}},
	}
	for key, value := range map[string]string{
		ParamCurrentScale: strconv.FormatFloat(cfg.Scale, 'g', -1, 64),
		ParamFontPath:     cfg.FontPath,
		ParamShaderPath:   cfg.ShaderPath,
		ParamTexturePath:  cfg.TexturePath,
	} {
		if err := g.params.Set(key, value); err != nil {
			return nil, err
		}
	}

	g.renderer = NewEbitenRenderer(EbitenRendererOptions{TileSize: cfg.TileSize, Assets: cfg.Assets})
	for _, name := range cfg.Textures {
		if err := g.loadTexture(name); err != nil {
			return nil, err
		}
	}
	fonts, err := g.loadFonts()
	if err != nil {
		return nil, err
	}

	c, err := NewComposite(Options{Renderer: g.renderer, Host: g, Fonts: fonts, TileSize: cfg.TileSize})
	if err != nil {
		return nil, err
	}
	c.SetDebugMode(cfg.Debug)
	if err := c.Build(); err != nil {
		return nil, err
	}
	g.composite = c
	return g, nil
}

func (g *Game) readFile(name string) ([]byte, error) {
	if g.cfg.Assets != nil {
		return fs.ReadFile(g.cfg.Assets, name)
	}
	return os.ReadFile(name)
}

func (g *Game) loadTexture(name string) error {
	data, err := g.readFile(path.Join(g.cfg.TexturePath, name))
	if err != nil {
		return fmt.Errorf("lattice: load texture %q: %w", name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("lattice: decode texture %q: %w", name, err)
	}
	if _, err := g.renderer.AddImage(name, img); err != nil {
		return err
	}
	return nil
}

func (g *Game) loadFonts() (map[string]Font, error) {
	fonts := make(map[string]Font, len(g.cfg.Fonts)+1)
	for key, ff := range g.cfg.Fonts {
		data, err := g.readFile(path.Join(g.cfg.FontPath, ff.GlyphMap))
		if err != nil {
			return nil, fmt.Errorf("lattice: load font %q: %w", key, err)
		}
		f, err := LoadBitmapFont(data, ff.Options)
		if err != nil {
			return nil, fmt.Errorf("lattice: load font %q: %w", key, err)
		}
		fonts[key] = f
	}
	if _, ok := fonts[DefaultFontKey]; !ok {
		basic, atlas, err := NewBasicFont()
		if err != nil {
			return nil, err
		}
		if _, err := g.renderer.AddImage(basic.TextureKey(), atlas); err != nil {
			return nil, err
		}
		fonts[DefaultFontKey] = basic
	}
	return fonts, nil
}

// Composite returns the hosted composite.
func (g *Game) Composite() *Composite { return g.composite }

// Renderer returns the Ebitengine renderer.
func (g *Game) Renderer() *EbitenRenderer { return g.renderer }

// Frame returns the number of ticks run so far.
func (g *Game) Frame() int { return g.frame }

// Viewport implements Host.
func (g *Game) Viewport() Vec2 { return g.viewport }

// Scale implements Host. It follows Composite.SetScale.
func (g *Game) Scale() float64 { return g.cfg.Scale }

func (g *Game) scaleChanged(scale float64) {
	g.cfg.Scale = scale
	_ = g.params.Set(ParamCurrentScale, strconv.FormatFloat(scale, 'g', -1, 64))
}

// Parameter implements Host.
func (g *Game) Parameter(key string) (string, error) { return g.params.Get(key) }

// AddInputListener implements Host.
func (g *Game) AddInputListener(fn func(ev Event)) {
	g.listeners = append(g.listeners, fn)
}

func (g *Game) emit(ev Event) {
	for _, fn := range g.listeners {
		fn(ev)
	}
}

// Update implements ebiten.Game. Injected events are delivered first, then
// polled input, then the composite's frame tick.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.initial != nil {
		layer := g.initial
		g.initial = nil
		if err := g.composite.Push(layer); err != nil {
			return err
		}
	}
	g.frame++
	g.drainInjected()
	g.input.poll(g.Scale(), g.emit)
	dt := float32(1.0 / float64(ebiten.TPS()))
	return g.composite.Update(g.frame, dt)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.DrawTo(screen)
}

// Layout implements ebiten.Game. A changed outside size resizes the
// composite.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := Vec2{float64(outsideWidth), float64(outsideHeight)}
	if vp != g.viewport && outsideWidth > 0 && outsideHeight > 0 {
		g.viewport = vp
		if err := g.composite.Resize(vp); err != nil && g.err == nil {
			g.err = err
		}
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs layer as the bottom layer of a new composite
// until the window is closed.
func Run(layer Layer, cfg RunConfig) error {
	if layer == nil {
		return fmt.Errorf("lattice: run: nil layer: %w", ErrInvalidArgument)
	}
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}
	defer g.composite.Dispose()
	g.initial = layer

	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.TPS)

	Logger().Info("run", slog.String("title", g.cfg.Title),
		slog.Int("width", g.cfg.Width), slog.Int("height", g.cfg.Height))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
