// Package samplespace models the domains in which a texture stores its
// per-pixel samples and the random Heaviside partitions drawn over them.
//
// A [Space] is one of six closed variants: [Real], [Circle], [Sphere],
// [Vector2], [Vector3] and [Vector4]. Each space draws a [Partition] from an
// explicit [Source] and the partition evaluates to a binary indicator for a
// pixel value. Averaged over many draws, the indicators of a space form an
// unbiased probe of the spatial structure of the sampled field, which is what
// makes Fourier-averaging of masks a proxy for the spectrum of the field.
//
// Pixels are addressed as planar channel data: plane c holds channel c of
// every pixel. [Partition.Mask] evaluates a partition over all pixels at once.
package samplespace
