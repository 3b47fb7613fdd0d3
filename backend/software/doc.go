// Package software rasterizes ribbon meshes on the CPU.
//
// Triangles are drawn through golang.org/x/image/vector, which produces
// anti-aliased coverage without any GPU dependency. The renderer keeps
// an RGBA image the size of the target; each RenderMesh call clears it
// and fills the mesh's triangles with the configured color.
package software
