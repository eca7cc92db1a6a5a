package mesh

// ElementFlags holds, per element, the number of inspected nodes that are
// stationary. Any nonzero count marks a boundary element.
type ElementFlags struct {
	counts []int32
}

// NewElementFlags takes ownership of counts, one entry per element
func NewElementFlags(counts []int32) *ElementFlags {
	return &ElementFlags{counts: counts}
}

func (f *ElementFlags) Len() int { return len(f.counts) }

// At returns the count for element k
func (f *ElementFlags) At(k int) (int32, error) {
	if k < 0 || k >= len(f.counts) {
		return 0, &OutOfRangeError{What: "element", Index: k, Len: len(f.counts)}
	}
	return f.counts[k], nil
}

// IsBoundary reports whether element k has at least one stationary node
func (f *ElementFlags) IsBoundary(k int) (bool, error) {
	c, err := f.At(k)
	return c != 0, err
}

// Values exposes the count buffer in element order. Callers must not modify it.
func (f *ElementFlags) Values() []int32 { return f.counts }

// NumBoundary is the number of elements with a nonzero count
func (f *ElementFlags) NumBoundary() (n int) {
	for _, c := range f.counts {
		if c != 0 {
			n++
		}
	}
	return
}

// Histogram returns h where h[c] is the number of elements with count c,
// for c in [0, maxCount]. Counts outside that range are not tallied, and a
// negative maxCount gives an empty histogram.
func (f *ElementFlags) Histogram(maxCount int) []int {
	if maxCount < 0 {
		return []int{}
	}
	h := make([]int, maxCount+1)
	for _, c := range f.counts {
		if c >= 0 && int(c) <= maxCount {
			h[c]++
		}
	}
	return h
}
