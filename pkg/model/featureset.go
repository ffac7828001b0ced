package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrUnsupportedMode is returned for a search mode other than forward or backward.
var ErrUnsupportedMode = errors.New("unsupported search mode")

// Mode selects how a FeatureSet is interpreted when masking columns.
type Mode int

const (
	// Forward treats the set as the features included in the distance
	Forward Mode = iota + 1
	// Backward treats the set as the features removed from the distance
	Backward
)

func (m Mode) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) Valid() bool {
	return m == Forward || m == Backward
}

// ParseMode accepts the mode names as well as the numbers of the interactive menu.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "forward":
		return Forward, nil
	case "2", "backward":
		return Backward, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// FeatureSet is a set of feature indices in [1, d].
// Membership is kept in a bitmap; order records insertions, most recent first, and is only used for display.
type FeatureSet struct {
	featureCount int
	bits         *roaring.Bitmap
	order        []int
}

func NewFeatureSet(featureCount int) FeatureSet {
	return FeatureSet{featureCount: featureCount, bits: roaring.New()}
}

// With returns a copy of the set with k added in front. The receiver is unchanged.
// Indices outside [1, d] and indices already present leave the copy as is.
func (f FeatureSet) With(k int) FeatureSet {
	c := f.Clone()
	if k < 1 || k > f.featureCount || c.Contains(k) {
		return c
	}
	c.bits.Add(uint32(k))
	c.order = append([]int{k}, c.order...)
	return c
}

func (f FeatureSet) Contains(k int) bool {
	return k >= 1 && f.bits != nil && f.bits.Contains(uint32(k))
}

func (f FeatureSet) Len() int {
	if f.bits == nil {
		return 0
	}
	return int(f.bits.GetCardinality())
}

// FeatureCount returns d, the size of the universe the set is drawn from.
func (f FeatureSet) FeatureCount() int {
	return f.featureCount
}

func (f FeatureSet) Full() bool {
	return f.Len() == f.featureCount
}

// Order returns the members, most recently added first.
func (f FeatureSet) Order() []int {
	return append([]int(nil), f.order...)
}

// Sorted returns the members in ascending order.
func (f FeatureSet) Sorted() []int {
	if f.bits == nil {
		return nil
	}
	members := f.bits.ToArray()
	result := make([]int, len(members))
	for i, m := range members {
		result[i] = int(m)
	}
	return result
}

// Complement returns, in ascending order, the features of 1..d that are not in the set.
func (f FeatureSet) Complement() []int {
	result := make([]int, 0, f.featureCount-f.Len())
	for j := 1; j <= f.featureCount; j++ {
		if !f.Contains(j) {
			result = append(result, j)
		}
	}
	return result
}

// Active returns the ascending feature columns that take part in distance computation
// when the set is read under mode: its members for Forward, everything else for Backward.
func (f FeatureSet) Active(mode Mode) []int {
	if mode == Backward {
		return f.Complement()
	}
	return f.Sorted()
}

func (f FeatureSet) Clone() FeatureSet {
	c := FeatureSet{featureCount: f.featureCount, order: f.Order()}
	if f.bits == nil {
		c.bits = roaring.New()
	} else {
		c.bits = f.bits.Clone()
	}
	return c
}

func (f FeatureSet) String() string {
	return Format(f.order)
}

// Format renders indices as {a,b,c}.
func Format(indices []int) string {
	parts := make([]string, len(indices))
	for i, v := range indices {
		parts[i] = strconv.Itoa(v)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
