package samplespace

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownSpace reports an unrecognized sample-space tag.
	ErrUnknownSpace = errors.New("unknown sample space")
	// ErrChannels reports an image with fewer channels than the space needs.
	ErrChannels = errors.New("not enough channels for sample space")
)

// Kind identifies a sample-space variant.
type Kind int

const (
	KindReal Kind = iota
	KindCircle
	KindSphere
	KindVector2
	KindVector3
	KindVector4
)

var kindNames = [...]string{"real", "circle", "sphere", "vector2", "vector3", "vector4"}

// String returns the tag used on the command line and in config files.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Source is the random stream a partition is drawn from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	NormFloat64() float64
}

// Space is a sample-space variant. The set of implementations is closed:
// only the types in this package satisfy it.
type Space interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Channels returns how many leading image channels a pixel sample uses.
	Channels() int
	// Draw returns a random partition of the space. stratum in [0, strata)
	// selects the stratum for spaces that use stratified jitter.
	Draw(src Source, stratum, strata int) Partition

	sealed()
}

// Parse returns the space for a tag such as "real" or "vector3".
func Parse(tag string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "real":
		return Real{}, nil
	case "circle":
		return Circle{}, nil
	case "sphere":
		return Sphere{}, nil
	case "vector2":
		return Vector2{}, nil
	case "vector3":
		return Vector3{}, nil
	case "vector4":
		return Vector4{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownSpace, tag, strings.Join(kindNames[:], "|"))
	}
}

// New returns the space for a kind.
func New(kind Kind) (Space, error) {
	if kind < 0 || int(kind) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSpace, kind)
	}
	return Parse(kindNames[kind])
}

// Validate checks that an image with the given channel count can be
// analysed in space.
func Validate(space Space, channels int) error {
	if channels < space.Channels() {
		return fmt.Errorf("%w: %s needs %d, image has %d", ErrChannels, space.Kind(), space.Channels(), channels)
	}
	return nil
}
