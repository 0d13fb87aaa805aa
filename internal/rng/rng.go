// Package rng derives independent, reproducible random streams per trial.
//
// Each trial of an estimator draws from its own PCG stream keyed by the run
// seed and the trial index, so results do not depend on which worker runs
// which trial or in what order.
package rng

import "math/rand/v2"

// golden is the 64-bit golden-ratio increment used by splitmix64.
const golden = 0x9e3779b97f4a7c15

// ForTrial returns the random stream for trial of a run seeded with seed.
func ForTrial(seed uint64, trial int) *rand.Rand {
	return rand.New(rand.NewPCG(mix(seed), mix(seed^mix(uint64(trial)+golden))))
}

// mix is the splitmix64 finalizer. It spreads nearby keys across the whole
// 64-bit range so consecutive trials get unrelated streams.
func mix(x uint64) uint64 {
	x += golden
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
