// Package volume reinterprets a flat texture image as a stack of square
// frames.
//
// Sampling textures for temporal or volumetric use are stored as a single
// 2D image whose height is a whole multiple of its width; frame k occupies
// rows [k*w, (k+1)*w). Because images are stored row-major, every frame is a
// contiguous range of each channel plane, so frames are views, not copies.
package volume
