package lattice

import (
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ShaderFile is the Kage source loaded from the shader path, if present.
const ShaderFile = "gui.kage"

// WhiteTexture is the key of the built-in opaque white atlas layer used by
// solid color boxes.
const WhiteTexture = "white"

// EbitenRendererOptions configures an EbitenRenderer.
type EbitenRendererOptions struct {
	// TileSize is the size of every atlas layer. Zero selects
	// DefaultTileSize.
	TileSize Vec2
	// Assets, if set, is used to read shader sources. Otherwise the OS file
	// system is used.
	Assets fs.FS
}

// EbitenRenderer implements Renderer on Ebitengine. The atlas texture array
// is a slice of tile-sized images; every instance of a render becomes one
// quad, and consecutive instances on the same layer are submitted in a
// single DrawTriangles32 call. Drawing happens on an offscreen surface in
// GUI pixels, which DrawTo scales onto the screen.
type EbitenRenderer struct {
	opts     EbitenRendererOptions
	tile     Vec2
	layers   []*ebiten.Image
	textures map[string]*Texture

	surface  *ebiten.Image
	viewport Vec2
	scale    float64

	shader *ebiten.Shader
	batch  Batch
	verts  []ebiten.Vertex
	inds   []uint32
	stats  RenderStats

	built    bool
	disposed bool
}

// NewEbitenRenderer creates a renderer with the built-in white layer
// registered at index 0.
func NewEbitenRenderer(opts EbitenRendererOptions) *EbitenRenderer {
	tile := opts.TileSize
	if tile == (Vec2{}) {
		tile = DefaultTileSize
	}
	r := &EbitenRenderer{
		opts:     opts,
		tile:     tile,
		textures: make(map[string]*Texture),
		scale:    1,
	}
	if tile.X > 0 && tile.Y > 0 {
		white := ebiten.NewImage(int(tile.X), int(tile.Y))
		white.Fill(ColorWhite.toRGBA())
		r.addLayer(WhiteTexture, white)
	}
	return r
}

func (r *EbitenRenderer) addLayer(name string, img *ebiten.Image) *Texture {
	t := &Texture{Name: name, Index: len(r.layers), Size: r.tile}
	r.layers = append(r.layers, img)
	r.textures[name] = t
	return t
}

// AddTexture registers img as a new atlas layer. Images smaller than the
// tile size are placed at the layer's top-left corner; larger ones are
// rejected. Registering an existing name replaces that layer's content.
func (r *EbitenRenderer) AddTexture(name string, img *ebiten.Image) (*Texture, error) {
	if r.disposed {
		return nil, fmt.Errorf("lattice: add texture %q: %w", name, ErrBackendUnavailable)
	}
	if img == nil {
		return nil, fmt.Errorf("lattice: add texture %q: nil image: %w", name, ErrInvalidArgument)
	}
	b := img.Bounds()
	if float64(b.Dx()) > r.tile.X || float64(b.Dy()) > r.tile.Y {
		return nil, fmt.Errorf("lattice: add texture %q: %dx%d exceeds tile %v: %w",
			name, b.Dx(), b.Dy(), r.tile, ErrInvalidArgument)
	}
	if len(r.layers) > math.MaxUint8 {
		return nil, fmt.Errorf("lattice: add texture %q: more than %d layers: %w",
			name, math.MaxUint8+1, ErrIllegalState)
	}

	layer := ebiten.NewImage(int(r.tile.X), int(r.tile.Y))
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(-b.Min.X), float64(-b.Min.Y))
	layer.DrawImage(img, &op)

	if t, ok := r.textures[name]; ok {
		r.layers[t.Index].Deallocate()
		r.layers[t.Index] = layer
		return t, nil
	}
	return r.addLayer(name, layer), nil
}

// AddImage registers a decoded image as a new atlas layer.
func (r *EbitenRenderer) AddImage(name string, img image.Image) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("lattice: add image %q: nil image: %w", name, ErrInvalidArgument)
	}
	return r.AddTexture(name, ebiten.NewImageFromImage(img))
}

// Build loads ShaderFile from shaderPath when the path is non-empty, and
// otherwise draws with Ebitengine's built-in vertex color blending.
func (r *EbitenRenderer) Build(shaderPath string) error {
	if r.disposed {
		return fmt.Errorf("lattice: build renderer: %w", ErrBackendUnavailable)
	}
	if r.tile.X <= 0 || r.tile.Y <= 0 {
		return fmt.Errorf("lattice: build renderer: tile size %v: %w", r.tile, ErrInvalidArgument)
	}
	if shaderPath != "" {
		src, err := r.readAsset(path.Join(shaderPath, ShaderFile))
		if err != nil {
			return fmt.Errorf("lattice: build renderer: read shader: %w", err)
		}
		s, err := ebiten.NewShader(src)
		if err != nil {
			return fmt.Errorf("lattice: build renderer: compile shader: %w", err)
		}
		if r.shader != nil {
			r.shader.Deallocate()
		}
		r.shader = s
	}
	r.built = true
	Logger().Info("renderer built", slog.Int("layers", len(r.layers)), slog.Bool("shader", r.shader != nil))
	return nil
}

func (r *EbitenRenderer) readAsset(name string) ([]byte, error) {
	if r.opts.Assets != nil {
		return fs.ReadFile(r.opts.Assets, name)
	}
	return os.ReadFile(name)
}

// Resize reallocates the surface at viewport/scale GUI pixels.
func (r *EbitenRenderer) Resize(viewport Vec2, scale float64) error {
	if r.disposed {
		return fmt.Errorf("lattice: resize renderer: %w", ErrBackendUnavailable)
	}
	if scale <= 0 {
		return fmt.Errorf("lattice: resize renderer: scale %v: %w", scale, ErrInvalidArgument)
	}
	w, h := surfaceSize(viewport, scale)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("lattice: resize renderer: viewport %v: %w", viewport, ErrInvalidArgument)
	}
	r.viewport = viewport
	r.scale = scale
	if r.surface != nil {
		if b := r.surface.Bounds(); b.Dx() == w && b.Dy() == h {
			return nil
		}
		r.surface.Deallocate()
	}
	r.surface = ebiten.NewImage(w, h)
	return nil
}

func surfaceSize(viewport Vec2, scale float64) (int, int) {
	return int(math.Ceil(viewport.X / scale)), int(math.Ceil(viewport.Y / scale))
}

// Render builds the batch from queue and draws it on top of the surface.
func (r *EbitenRenderer) Render(queue []*Visual, n int) error {
	if r.disposed || !r.built {
		return fmt.Errorf("lattice: render: renderer not built: %w", ErrBackendUnavailable)
	}
	if r.surface == nil {
		return fmt.Errorf("lattice: render: surface not sized: %w", ErrIllegalState)
	}
	r.stats = RenderStats{}

	t0 := time.Now()
	if err := r.batch.Build(queue, n, r.tile); err != nil {
		return err
	}
	for i := 0; i < r.batch.Count; i++ {
		if int(r.batch.Layers[i]) >= len(r.layers) {
			return fmt.Errorf("lattice: render: instance %d samples layer %d of %d: %w",
				i, r.batch.Layers[i], len(r.layers), ErrUndefinedKey)
		}
	}
	t1 := time.Now()
	r.stats.BatchTime = t1.Sub(t0)

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for i := 0; i < r.batch.Count; {
		layer := r.batch.Layers[i]
		j := i
		for j < r.batch.Count && r.batch.Layers[j] == layer {
			world, atlas, _, rgba := r.batch.Instance(j)
			r.verts, r.inds = appendInstanceQuad(r.verts, r.inds, world, atlas, r.tile, rgba)
			j++
		}
		r.flush(layer)
		i = j
	}
	r.stats.SubmitTime = time.Since(t1)
	r.stats.Instances = r.batch.Count
	return nil
}

// flush submits the accumulated quads sampling layer in one call.
func (r *EbitenRenderer) flush(layer uint8) {
	if len(r.verts) == 0 {
		return
	}
	src := r.layers[layer]
	if r.shader != nil {
		var op ebiten.DrawTrianglesShaderOptions
		op.Images[0] = src
		r.surface.DrawTrianglesShader32(r.verts, r.inds, r.shader, &op)
	} else {
		var op ebiten.DrawTrianglesOptions
		op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		r.surface.DrawTriangles32(r.verts, r.inds, src, &op)
	}
	r.stats.DrawCallCount++
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// appendInstanceQuad maps QuadFan through the instance matrices and appends
// 4 vertices and the 6 indices of the fan's two triangles. Atlas coordinates
// are normalized to the layer and scaled back to texels by tile.
func appendInstanceQuad(verts []ebiten.Vertex, inds []uint32, world, atlas Mat3, tile Vec2, rgba [4]uint8) ([]ebiten.Vertex, []uint32) {
	// Premultiplied vertex color.
	a := float32(rgba[3]) / 255
	cr := float32(rgba[0]) / 255 * a
	cg := float32(rgba[1]) / 255 * a
	cb := float32(rgba[2]) / 255 * a

	base := uint32(len(verts))
	tw, th := float32(tile.X), float32(tile.Y)
	for _, corner := range QuadFan {
		dx, dy := world.Apply(corner)
		u, v := atlas.Apply(corner)
		verts = append(verts, ebiten.Vertex{
			DstX:   dx,
			DstY:   dy,
			SrcX:   u * tw,
			SrcY:   v * th,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: a,
		})
	}
	inds = append(inds,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
	return verts, inds
}

// Clear erases the surface.
func (r *EbitenRenderer) Clear() {
	if r.surface != nil {
		r.surface.Clear()
	}
}

// Texture implements Renderer.
func (r *EbitenRenderer) Texture(key string) (*Texture, error) {
	t, ok := r.textures[key]
	if !ok {
		return nil, fmt.Errorf("lattice: texture %q: %w", key, ErrUndefinedKey)
	}
	return t, nil
}

// Surface returns the offscreen surface, or nil before the first Resize.
func (r *EbitenRenderer) Surface() *ebiten.Image { return r.surface }

// DrawTo draws the surface onto screen scaled by the GUI scale.
func (r *EbitenRenderer) DrawTo(screen *ebiten.Image) {
	if r.surface == nil || screen == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.scale, r.scale)
	screen.DrawImage(r.surface, &op)
}

// LastStats returns the metrics of the most recent Render.
func (r *EbitenRenderer) LastStats() RenderStats { return r.stats }

// Dispose deallocates every image and the shader.
func (r *EbitenRenderer) Dispose() {
	if r.disposed {
		return
	}
	for _, img := range r.layers {
		img.Deallocate()
	}
	r.layers = nil
	r.textures = nil
	if r.surface != nil {
		r.surface.Deallocate()
		r.surface = nil
	}
	if r.shader != nil {
		r.shader.Deallocate()
		r.shader = nil
	}
	r.disposed = true
}
