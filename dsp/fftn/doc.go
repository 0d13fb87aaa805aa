// Package fftn computes N-dimensional discrete Fourier transforms of
// row-major arrays.
//
// The transform is separable: a 1D algo-fft plan runs along every axis in
// turn. Axes of length 1 are skipped since their transform is the identity.
// The package also provides [Shift], which moves the zero-frequency bin to
// the centre of every axis.
package fftn
