// Package spectral estimates the RMS power spectrum of a sampling texture.
//
// Every trial draws one random Heaviside partition of the sample space,
// evaluates it over the whole frame volume and adds the squared magnitude of
// the volume's N-dimensional Fourier transform to an [Accumulator]. After all
// trials the zero-frequency bin is removed, the summed power is square
// rooted without dividing by the trial count, and the result is shifted so
// zero frequency sits at the centre of every axis.
//
// Usage:
//
//	vol, _ := volume.Decompose(img.Remapped())
//	res, err := spectral.Estimate(ctx, vol, samplespace.Vector2{},
//		spectral.WithTrials(256),
//		spectral.WithSeed(7),
//	)
package spectral
