package ribbon

// Renderer consumes tessellated meshes. Implementations live in the
// backend packages: backend/software rasterizes into an image, backend/wgpu
// draws through a GPU device.
type Renderer interface {
	// RenderMesh draws the mesh's triangles.
	// Returns an error if the rendering operation fails.
	RenderMesh(mesh Mesh) error
}
