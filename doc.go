// Package paintcore provides the shared primitives used across the brush
// engine: 2D points, 2x3 affine matrices, the process-wide logger, and the
// debug-assertion switch.
//
// # Architecture
//
// The engine is split by concern:
//   - colormath: sRGB/linear conversion, HSV/HSL/HCY/RYB, spectral mixing
//   - tile: the tiled raster store, worker pool, dirty-rect tracking
//   - mask: dab rasterization and the RLE opacity-run encoding
//   - blend: the compositing kernels
//   - getcolor: the color-under-the-brush accumulator
//   - symmetry: mirror/rotational clone matrix generation
//   - surface: the facade tying tile+mask+blend+getcolor+symmetry together
//   - brush: settings, dynamics state, and the JSON brush format
//
// paintcore itself holds only what every other package needs: Point,
// Matrix, the straight RGBA color type, the logger, and the
// debug-assertion switch.
package paintcore
