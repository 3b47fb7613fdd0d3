package software

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/ribbon"
)

// Renderer rasterizes meshes into an in-memory RGBA image. It
// implements ribbon.Renderer.
//
// The viewport maps a world rectangle onto the full image, with world
// +Y pointing up (image rows run top to bottom). When no viewport is
// set, each mesh is fit to its own bounding box.
//
// Renderer is NOT safe for concurrent use.
type Renderer struct {
	width, height int
	viewport      ribbon.Rect
	color         color.RGBA
	img           *image.RGBA
}

var _ ribbon.Renderer = (*Renderer)(nil)

// New creates a renderer with a width x height target image. The fill
// color defaults to opaque white.
func New(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("software: invalid dimensions %dx%d", width, height)
	}
	return &Renderer{
		width:  width,
		height: height,
		color:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// SetViewport sets the world rectangle mapped onto the full image.
// Zero-size rectangles reset the renderer to fit-to-mesh mode.
func (r *Renderer) SetViewport(v ribbon.Rect) {
	if v.Width() <= 0 || v.Height() <= 0 {
		r.viewport = ribbon.Rect{}
		return
	}
	r.viewport = v
}

// SetColor sets the fill color for subsequent meshes.
func (r *Renderer) SetColor(c color.RGBA) {
	r.color = c
}

// Image returns the target image. The returned image is reused across
// RenderMesh calls.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// Size returns the target dimensions.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// RenderMesh clears the image and fills the mesh's triangles.
// An empty mesh just clears. Invalid meshes are rejected.
func (r *Renderer) RenderMesh(mesh ribbon.Mesh) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	if mesh.IsEmpty() {
		return nil
	}

	viewport := r.viewport
	if viewport.Width() <= 0 || viewport.Height() <= 0 {
		viewport = mesh.Bounds()
		if viewport.Width() <= 0 || viewport.Height() <= 0 {
			return nil
		}
	}

	sx := float64(r.width) / viewport.Width()
	sy := float64(r.height) / viewport.Height()
	toPixel := func(p ribbon.Point) (float32, float32) {
		return float32((p.X - viewport.Min.X) * sx), float32((viewport.Max.Y - p.Y) * sy)
	}

	rast := vector.NewRasterizer(r.width, r.height)
	rast.DrawOp = draw.Over
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		ax, ay := toPixel(mesh.Vertices[mesh.Indices[i]])
		bx, by := toPixel(mesh.Vertices[mesh.Indices[i+1]])
		cx, cy := toPixel(mesh.Vertices[mesh.Indices[i+2]])
		// The rasterizer accumulates signed winding across subpaths, so
		// triangles of opposite orientation would cancel where they
		// overlap. Normalize every triangle to one winding direction.
		if (bx-ax)*(cy-ay)-(by-ay)*(cx-ax) < 0 {
			bx, by, cx, cy = cx, cy, bx, by
		}
		rast.MoveTo(ax, ay)
		rast.LineTo(bx, by)
		rast.LineTo(cx, cy)
		rast.ClosePath()
	}
	rast.Draw(r.img, r.img.Bounds(), image.NewUniform(r.color), image.Point{})

	ribbon.Logger().Debug("software: rendered mesh",
		"triangles", mesh.TriangleCount(), "size", fmt.Sprintf("%dx%d", r.width, r.height))
	return nil
}
