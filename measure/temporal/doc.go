// Package temporal estimates how quickly the error of an exponentially
// accumulated sampling texture decays over frames.
//
// Every trial draws a random Heaviside partition, evaluates it on each frame,
// smooths the mask spatially, runs it through a single-pole exponential
// moving average across frames ([Filter]) and records the spatial variance of
// the smoothed result per frame ([Accumulator]). The finalized [Series] is
// the RMS of that variance over trials: one error value per frame.
//
// The smoothing factor of the analysis filter is independent of whatever
// parameters were used to generate the texture.
package temporal
