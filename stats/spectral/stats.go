// Package spectral summarizes centred sampling-texture spectra: global
// statistics, radially averaged power and per-ring anisotropy.
//
// Inputs are laid out like the estimator result: frames planes of width x
// width values, frame-major, with the zero frequency at index
// (frames/2)*width*width + (width/2)*width + width/2.
package spectral

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ErrShape reports values that do not match the declared layout.
var ErrShape = errors.New("spectrum shape mismatch")

// Stats holds global statistics of a centred spectrum. DC is excluded from
// everything except Bins.
type Stats struct {
	Bins     int
	Max      float64
	MaxBin   int
	Mean     float64
	Energy   float64 // sum of squared values
	Flatness float64 // Wiener entropy of the power, 0..1
}

// Centre returns the flat index of the zero-frequency bin.
func Centre(width, frames int) int {
	return (frames/2)*width*width + (width/2)*width + width/2
}

func checkShape(values []float64, width, frames int) error {
	if width <= 0 || frames <= 0 {
		return fmt.Errorf("%w: width=%d frames=%d", ErrShape, width, frames)
	}
	if len(values) != width*width*frames {
		return fmt.Errorf("%w: %d values for %dx%dx%d", ErrShape, len(values), frames, width, width)
	}
	return nil
}

// Calculate computes the global statistics of a centred spectrum.
func Calculate(values []float64, width, frames int) (Stats, error) {
	if err := checkShape(values, width, frames); err != nil {
		return Stats{}, err
	}

	dc := Centre(width, frames)
	s := Stats{Bins: len(values), MaxBin: -1}
	power := make([]float64, 0, len(values)-1)
	var sum float64
	for i, v := range values {
		if i == dc {
			continue
		}
		sum += v
		s.Energy += v * v
		power = append(power, v*v)
		if s.MaxBin < 0 || v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
	}
	if n := len(power); n > 0 {
		s.Mean = sum / float64(n)
	}
	s.Flatness = Flatness(power)
	return s, nil
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
//	Flatness = exp(mean(log(x_i))) / mean(x_i)
//
// A perfectly flat input yields 1. Any zero value yields 0.
func Flatness(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sumLin, sumLog float64
	for _, v := range values {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	n := float64(len(values))
	return math.Exp(sumLog/n) / (sumLin / n)
}

// Profile is the radially averaged power spectrum. Ring r collects the bins
// whose spatial distance from the centre rounds to r, pooled over all
// frequency planes. Corners beyond width/2 are dropped.
type Profile struct {
	// Power is the mean squared value per ring.
	Power []float64
	// Anisotropy is the variance of the squared values in a ring divided
	// by the squared ring mean. Zero for an isotropic ring.
	Anisotropy []float64
	// Count is the number of bins per ring.
	Count []int
}

// Radial computes the radial profile of a centred spectrum. The DC bin is
// excluded.
func Radial(values []float64, width, frames int) (*Profile, error) {
	if err := checkShape(values, width, frames); err != nil {
		return nil, err
	}

	rings := width/2 + 1
	sum := make([]float64, rings)
	sumSq := make([]float64, rings)
	count := make([]int, rings)

	dc := Centre(width, frames)
	half := width / 2
	plane := width * width
	for k := 0; k < frames; k++ {
		for y := 0; y < width; y++ {
			for x := 0; x < width; x++ {
				i := k*plane + y*width + x
				if i == dc {
					continue
				}
				r := int(math.Round(math.Hypot(float64(x-half), float64(y-half))))
				if r >= rings {
					continue
				}
				p := values[i] * values[i]
				sum[r] += p
				sumSq[r] += p * p
				count[r]++
			}
		}
	}

	prof := &Profile{
		Power:      make([]float64, rings),
		Anisotropy: make([]float64, rings),
		Count:      count,
	}
	for r := range sum {
		if count[r] == 0 {
			continue
		}
		n := float64(count[r])
		mean := sum[r] / n
		prof.Power[r] = mean
		if mean > 0 {
			variance := max(sumSq[r]/n-mean*mean, 0)
			prof.Anisotropy[r] = variance / (mean * mean)
		}
	}
	return prof, nil
}

// WriteCSV writes one row per ring: radius, power, anisotropy, count.
func (p *Profile) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"radius", "power", "anisotropy", "count"}); err != nil {
		return err
	}
	for r := range p.Power {
		row := []string{
			strconv.Itoa(r),
			strconv.FormatFloat(p.Power[r], 'e', 18, 64),
			strconv.FormatFloat(p.Anisotropy[r], 'e', 18, 64),
			strconv.Itoa(p.Count[r]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
