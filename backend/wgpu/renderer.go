package wgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ribbon"
)

//go:embed shaders/ribbon.wgsl
var ribbonShaderSource string

// sampleCount is the MSAA sample count for mesh rendering.
// 4x MSAA smooths the triangle edges at reasonable cost.
const sampleCount = 4

// vertexStride is the byte stride per vertex: position (vec2<f32>).
const vertexStride = 8

// uniformSize is the byte size of the uniform buffer.
// Layout: origin (vec2<f32>) + scale (vec2<f32>) + color (vec4<f32>) = 32 bytes.
const uniformSize = 32

// Renderer draws ribbon meshes into an offscreen MSAA texture and keeps
// the resolved pixels available for readback. It implements
// ribbon.Renderer.
//
// The HAL render pass encoder draws non-indexed triangle lists, so
// RenderMesh expands the mesh's indices into a flat vertex stream at
// upload time.
//
// Renderer is NOT safe for concurrent use.
type Renderer struct {
	dev *Device

	// GPU objects for the render pipeline.
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	// MSAA color target and single-sample resolve target (CopySrc).
	msaaTex     hal.Texture
	msaaView    hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView

	width, height uint32

	viewport ribbon.Rect
	color    [4]float32

	// pixels holds the last readback, BGRA rows top to bottom.
	pixels []byte
}

var _ ribbon.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer targeting a width x height offscreen
// surface on the given device. The fill color defaults to opaque white;
// the viewport defaults to the unit square around the origin and can be
// changed per frame with SetViewport.
func NewRenderer(dev *Device, width, height int) (*Renderer, error) {
	if dev == nil || dev.device == nil {
		return nil, fmt.Errorf("wgpu: renderer needs an open device")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid dimensions %dx%d", width, height)
	}
	r := &Renderer{
		dev:      dev,
		viewport: ribbon.NewRect(ribbon.Pt(-1, -1), ribbon.Pt(1, 1)),
		color:    [4]float32{1, 1, 1, 1},
	}
	if err := r.createPipeline(); err != nil {
		return nil, err
	}
	if err := r.ensureTextures(uint32(width), uint32(height)); err != nil {
		r.destroyPipeline()
		return nil, err
	}
	return r, nil
}

// SetViewport sets the world rectangle mapped onto the full render
// target. Zero-size rectangles are ignored.
func (r *Renderer) SetViewport(v ribbon.Rect) {
	if v.Width() <= 0 || v.Height() <= 0 {
		return
	}
	r.viewport = v
}

// SetColor sets the fill color for subsequent meshes (straight alpha;
// premultiplied before upload).
func (r *Renderer) SetColor(red, green, blue, alpha float32) {
	r.color = [4]float32{red * alpha, green * alpha, blue * alpha, alpha}
}

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times. The device itself is not closed.
func (r *Renderer) Destroy() {
	r.destroyPipeline()
	r.destroyTextures()
}

// RenderMesh draws the mesh into the offscreen target and reads the
// resolved pixels back. Empty meshes clear the target. The result is
// available via Image until the next call.
func (r *Renderer) RenderMesh(mesh ribbon.Mesh) error {
	if err := mesh.Validate(); err != nil {
		return err
	}

	vertexData := meshVertexData(mesh)
	vertexCount := uint32(len(mesh.Indices))

	uniformBuf, err := r.createAndUploadBuffer("ribbon_uniform",
		makeUniform(r.viewport, r.color),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	defer r.dev.device.DestroyBuffer(uniformBuf)

	bindGroup, err := r.dev.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "ribbon_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer r.dev.device.DestroyBindGroup(bindGroup)

	var vertBuf hal.Buffer
	if len(vertexData) > 0 {
		vertBuf, err = r.createAndUploadBuffer("ribbon_verts", vertexData,
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return fmt.Errorf("create vertex buffer: %w", err)
		}
		defer r.dev.device.DestroyBuffer(vertBuf)
	}

	ribbon.Logger().Debug("wgpu: render mesh",
		"triangles", mesh.TriangleCount(), "vertices", vertexCount)

	return r.encodeAndReadback(vertBuf, vertexCount, bindGroup)
}

// Image returns the last rendered frame as an RGBA image. Returns an
// error if RenderMesh has not produced a frame yet.
func (r *Renderer) Image() (*image.RGBA, error) {
	if r.pixels == nil {
		return nil, fmt.Errorf("wgpu: no frame rendered yet")
	}
	w, h := int(r.width), int(r.height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(r.pixels); i += 4 {
		// BGRA -> RGBA
		img.Pix[i+0] = r.pixels[i+2]
		img.Pix[i+1] = r.pixels[i+1]
		img.Pix[i+2] = r.pixels[i+0]
		img.Pix[i+3] = r.pixels[i+3]
	}
	return img, nil
}

// Size returns the render target dimensions.
func (r *Renderer) Size() (int, int) {
	return int(r.width), int(r.height)
}

func (r *Renderer) createPipeline() error {
	if ribbonShaderSource == "" {
		return fmt.Errorf("ribbon shader source is empty")
	}

	shader, err := r.dev.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ribbon_shader",
		Source: hal.ShaderSource{WGSL: ribbonShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile ribbon shader: %w", err)
	}
	r.shader = shader

	uniformLayout, err := r.dev.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "ribbon_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.dev.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "ribbon_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := r.dev.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "ribbon_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: vertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline

	return nil
}

func (r *Renderer) destroyPipeline() {
	dev := r.dev.device
	if dev == nil {
		return
	}
	if r.pipeline != nil {
		dev.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		dev.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		dev.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		dev.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// ensureTextures creates or recreates the MSAA and resolve textures if
// the requested dimensions differ from the current size.
func (r *Renderer) ensureTextures(w, h uint32) error {
	if r.width == w && r.height == h && r.msaaTex != nil {
		return nil
	}
	r.destroyTextures()

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	msaaTex, err := r.dev.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "ribbon_msaa",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create MSAA texture: %w", err)
	}
	r.msaaTex = msaaTex

	msaaView, err := r.dev.device.CreateTextureView(msaaTex, &hal.TextureViewDescriptor{
		Label:         "ribbon_msaa_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.destroyTextures()
		return fmt.Errorf("create MSAA view: %w", err)
	}
	r.msaaView = msaaView

	resolveTex, err := r.dev.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "ribbon_resolve",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		r.destroyTextures()
		return fmt.Errorf("create resolve texture: %w", err)
	}
	r.resolveTex = resolveTex

	resolveView, err := r.dev.device.CreateTextureView(resolveTex, &hal.TextureViewDescriptor{
		Label:         "ribbon_resolve_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.destroyTextures()
		return fmt.Errorf("create resolve view: %w", err)
	}
	r.resolveView = resolveView

	r.width = w
	r.height = h
	return nil
}

func (r *Renderer) destroyTextures() {
	dev := r.dev.device
	if dev == nil {
		return
	}
	if r.resolveView != nil {
		dev.DestroyTextureView(r.resolveView)
		r.resolveView = nil
	}
	if r.resolveTex != nil {
		dev.DestroyTexture(r.resolveTex)
		r.resolveTex = nil
	}
	if r.msaaView != nil {
		dev.DestroyTextureView(r.msaaView)
		r.msaaView = nil
	}
	if r.msaaTex != nil {
		dev.DestroyTexture(r.msaaTex)
		r.msaaTex = nil
	}
	r.width = 0
	r.height = 0
}

// encodeAndReadback encodes the render pass, copies the resolve texture
// to a staging buffer, submits, waits, and reads back pixels.
func (r *Renderer) encodeAndReadback(vertBuf hal.Buffer, vertexCount uint32, bindGroup hal.BindGroup) error {
	encoder, err := r.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "ribbon_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("ribbon_render"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "ribbon_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:          r.msaaView,
				ResolveTarget: r.resolveView,
				LoadOp:        gputypes.LoadOpClear,
				StoreOp:       gputypes.StoreOpStore,
				ClearValue:    gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
	})
	if vertBuf != nil && vertexCount > 0 {
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, bindGroup, nil)
		rp.SetVertexBuffer(0, vertBuf, 0)
		rp.Draw(vertexCount, 1, 0, 0)
	}
	rp.End()

	// After MSAA resolve the texture is in render attachment layout;
	// the copy below needs transfer source layout.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	pixelBufSize := uint64(r.width) * uint64(r.height) * 4
	stagingBuf, err := r.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ribbon_staging",
		Size:  pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.dev.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.resolveTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: r.width * 4, RowsPerImage: r.height},
		TextureBase:  hal.ImageCopyTexture{Texture: r.resolveTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.dev.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.dev.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.dev.device.DestroyFence(fence)

	if err := r.dev.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.dev.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	if r.pixels == nil || uint64(len(r.pixels)) != pixelBufSize {
		r.pixels = make([]byte, pixelBufSize)
	}
	if err := r.dev.queue.ReadBuffer(stagingBuf, 0, r.pixels); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.dev.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// meshVertexData expands a mesh's indexed triangles into a flat
// position-only vertex stream, one vec2<f32> per index.
func meshVertexData(mesh ribbon.Mesh) []byte {
	buf := make([]byte, len(mesh.Indices)*vertexStride)
	offset := 0
	for _, idx := range mesh.Indices {
		p := mesh.Vertices[idx]
		binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(float32(p.X)))
		binary.LittleEndian.PutUint32(buf[offset+4:offset+8], math.Float32bits(float32(p.Y)))
		offset += vertexStride
	}
	return buf
}

// makeUniform packs the 32-byte uniform buffer: viewport center, the
// world-to-clip scale factors, and the premultiplied fill color.
func makeUniform(viewport ribbon.Rect, color [4]float32) []byte {
	buf := make([]byte, uniformSize)
	cx := (viewport.Min.X + viewport.Max.X) / 2
	cy := (viewport.Min.Y + viewport.Max.Y) / 2
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(cx)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(cy)))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(float32(2/viewport.Width())))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(float32(2/viewport.Height())))
	for i, c := range color {
		binary.LittleEndian.PutUint32(buf[16+i*4:20+i*4], math.Float32bits(c))
	}
	return buf
}
