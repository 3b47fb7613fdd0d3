// Package wgpu renders ribbon meshes through gogpu/wgpu's HAL layer.
//
// The renderer draws the mesh's triangles into a 4x MSAA BGRA8Unorm
// texture and resolves to a single-sample texture that can be read back
// to the CPU. The world-to-clip mapping and the fill color are passed
// through a small uniform buffer; the vertex stream is position-only.
//
// A Device can be opened directly (Vulkan adapter enumeration) or
// borrowed from an external provider that exposes HAL handles, so a
// host application and this package can share one GPU device.
//
// Basic usage:
//
//	dev, err := wgpu.Open()
//	if err != nil {
//	    // no GPU available
//	}
//	defer dev.Close()
//
//	r, err := wgpu.NewRenderer(dev, 800, 600)
//	if err != nil { ... }
//	defer r.Destroy()
//
//	r.SetViewport(mesh.Bounds().Expand(0.1))
//	if err := r.RenderMesh(mesh); err != nil { ... }
//	img, err := r.Image()
package wgpu
