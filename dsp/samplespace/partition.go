package samplespace

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Partition is a binary indicator over a sample space. Partitions are
// immutable values; the implementations are [Threshold], [Rotation] and
// [Hyperplane].
type Partition interface {
	// Evaluate reports whether pixel falls on the "one" side of the
	// partition. pixel holds at least as many channels as the space uses.
	Evaluate(pixel []float64) bool
	// Mask evaluates the partition for every pixel at once, writing 1 or 0
	// to dst. planes holds one slice per channel, each len(dst) long.
	Mask(dst []float64, planes [][]float64) error
}

// Threshold partitions the real line: x < T.
type Threshold struct {
	T float64
}

// Rotation partitions the circle of circumference 2 into two half-circles
// rotated by T: (T + x) mod 2 < 1.
type Rotation struct {
	T float64
}

// Hyperplane partitions a vector space: dot(Normal, x) < Offset.
type Hyperplane struct {
	Normal []float64
	Offset float64
}

// Evaluate implements [Partition].
func (p Threshold) Evaluate(pixel []float64) bool {
	return pixel[0] < p.T
}

// Mask implements [Partition].
func (p Threshold) Mask(dst []float64, planes [][]float64) error {
	if err := checkPlanes(dst, planes, 1); err != nil {
		return err
	}
	x := planes[0]
	for i := range dst {
		dst[i] = indicator(x[i] < p.T)
	}
	return nil
}

// Evaluate implements [Partition].
func (p Rotation) Evaluate(pixel []float64) bool {
	return wrap2(p.T+pixel[0]) < 1
}

// Mask implements [Partition].
func (p Rotation) Mask(dst []float64, planes [][]float64) error {
	if err := checkPlanes(dst, planes, 1); err != nil {
		return err
	}
	x := planes[0]
	for i := range dst {
		dst[i] = indicator(wrap2(p.T+x[i]) < 1)
	}
	return nil
}

// Evaluate implements [Partition].
func (p Hyperplane) Evaluate(pixel []float64) bool {
	var dot float64
	for c, n := range p.Normal {
		// The conversion keeps the product from fusing into an FMA, so the
		// result matches Mask bit for bit.
		dot += float64(n * pixel[c])
	}
	return dot < p.Offset
}

// Mask implements [Partition]. The dot products are formed plane by plane
// with block operations.
func (p Hyperplane) Mask(dst []float64, planes [][]float64) error {
	if err := checkPlanes(dst, planes, len(p.Normal)); err != nil {
		return err
	}

	dot, tmp, buf := getScratch(len(dst))
	defer putScratch(buf)

	for i := range dot {
		dot[i] = 0
	}
	for c, n := range p.Normal {
		vecmath.ScaleBlock(tmp, planes[c][:len(dst)], n)
		vecmath.AddBlockInPlace(dot, tmp)
	}
	for i := range dst {
		dst[i] = indicator(dot[i] < p.Offset)
	}
	return nil
}

func checkPlanes(dst []float64, planes [][]float64, need int) error {
	if len(planes) < need {
		return fmt.Errorf("%w: partition needs %d planes, got %d", ErrChannels, need, len(planes))
	}
	for c := 0; c < need; c++ {
		if len(planes[c]) < len(dst) {
			return fmt.Errorf("plane %d has %d pixels, mask has %d", c, len(planes[c]), len(dst))
		}
	}
	return nil
}

// wrap2 reduces x into [0, 2) with floor semantics, so negative pixel values
// wrap around the circle the same way positive ones do.
func wrap2(x float64) float64 {
	m := math.Mod(x, 2)
	if m < 0 {
		m += 2
	}
	if m >= 2 {
		m = 0
	}
	return m
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// scratchBuf holds pooled dot-product scratch memory.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (dot, tmp []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}
