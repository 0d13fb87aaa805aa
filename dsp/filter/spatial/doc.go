// Package spatial provides periodic 2D smoothing filters for masks.
//
// Three kernels are available:
//
//   - box: uniform average over a square window of integer size n
//   - binomial: n passes of a size-2 box, approximating a Gaussian by
//     iterated convolution
//   - gauss: Gaussian with standard deviation sigma, truncated at
//     int(4*sigma+0.5) taps either side of the centre
//
// All filters are separable and wrap around both axes. A window of size n
// covering output index i spans input indices [i - n/2, i - n/2 + n), so
// even sizes lean towards lower indices.
package spatial
