package core

// Precomputed data tables used for the CV calibration curves. A table
// replaces a runtime transcendental function with an array access plus
// linear interpolation.

// BuildTable fills a table of n values where entry i is fn(i, n). The
// result is computed once at startup and never mutated afterwards, so
// it is safe to share between the audio callback and poll context
// without synchronization.
func BuildTable[T any](n int, fn func(index, numValues int) T) []T {
	data := make([]T, n)
	for i := range data {
		data[i] = fn(i, n)
	}
	return data
}

// LookupTable maps a power-of-two input domain to float32 values via a
// power-of-two sized table with linear interpolation between bins.
//
// The table has tableSize+1 entries: the extra trailing entry lets the
// interpolation read entry[index+1] without a bounds branch at the top
// bin.
type LookupTable struct {
	bitsIn    uint
	bitsTable uint
	shift     uint
	mask      uint32
	data      []float32
}

// NewLookupTable computes a lookup table over a bitsIn-bit input
// domain. fn is called with the table index and the table size (not
// counting the extra interpolation entry) for each of tableSize+1
// entries. bitsIn must be greater than bitsTable.
func NewLookupTable(bitsIn, bitsTable uint, fn func(index, numValues int) float32) *LookupTable {
	size := 1 << bitsTable
	return &LookupTable{
		bitsIn:    bitsIn,
		bitsTable: bitsTable,
		shift:     bitsIn - bitsTable,
		mask:      uint32(1<<(bitsIn-bitsTable)) - 1,
		data:      BuildTable(size+1, func(i, _ int) float32 { return fn(i, size) }),
	}
}

// Lookup returns the interpolated output for input n. Inputs past the
// bitsIn-bit domain wrap onto the table.
func (t *LookupTable) Lookup(n uint32) float32 {
	index := (n >> t.shift) % uint32(len(t.data)-1)
	e0 := t.data[index]
	e1 := t.data[index+1]
	// Linear interpolation on the low bits of n. Exact at bin
	// boundaries (frac == 0) and never overshoots [e0, e1].
	frac := float32(n&t.mask) / float32(t.mask+1)
	return e0 + (e1-e0)*frac
}

// Size returns the number of table bins (without the interpolation
// entry).
func (t *LookupTable) Size() int {
	return len(t.data) - 1
}

// Rescale maps x linearly from [inLo, inHi] to [outLo, outHi]. It does
// not clamp: x may lie outside the input range and the result is still
// well defined. Callers clamp afterwards where the output range is a
// hard limit.
func Rescale(x, inLo, inHi, outLo, outHi float32) float32 {
	return outLo + (outHi-outLo)*(x-inLo)/(inHi-inLo)
}
