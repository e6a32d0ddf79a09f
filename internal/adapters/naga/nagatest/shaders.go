// Package nagatest provides WGSL sources for tests that compile pipelines.
package nagatest

import "fmt"

// Vertex is a vertex stage with the default entry point.
const Vertex = `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`

// Fragment is a fragment stage with the default entry point.
const Fragment = `
@fragment
fn fs_main(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
    return color;
}
`

// Broken does not parse.
const Broken = `
@fragment
fn fs_main( {
    return vec4<f32>(0.0);
}
`

// FragmentVariant returns a valid fragment stage whose bytes differ for
// every n.
func FragmentVariant(n int) string {
	return fmt.Sprintf(`
@fragment
fn fs_main(@location(0) color: vec4<f32>) -> @location(0) vec4<f32> {
    return color * %d.0;
}
`, n)
}
