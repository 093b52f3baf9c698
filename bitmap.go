package slotecs

import "math/bits"

const (
	bitsPerWord = 64
	fullWord    = ^uint64(0)
)

// bitmap marks which entity slots are occupied. Each bit corresponds to a
// slot index; a set bit means a live entity currently holds that slot.
type bitmap []uint64

// newBitmap allocates a cleared bitmap able to hold n bits.
func newBitmap(n int) bitmap {
	return make(bitmap, wordsFor(n))
}

// wordsFor returns the number of uint64 words needed for n bits.
func wordsFor(n int) int {
	return (n + bitsPerWord - 1) / bitsPerWord
}

// get reports whether bit i is set.
func (b bitmap) get(i int) bool {
	w := i >> 6
	if w >= len(b) {
		return false
	}
	return b[w]&(uint64(1)<<uint(i&63)) != 0
}

// set enables bit i.
func (b bitmap) set(i int) {
	b[i>>6] |= uint64(1) << uint(i&63)
}

// clear disables bit i.
func (b bitmap) clear(i int) {
	b[i>>6] &^= uint64(1) << uint(i&63)
}

// firstFree returns the lowest cleared bit below limit. Full words are
// skipped in a single probe.
//
// Parameters:
//   - limit: The number of valid bits; bits at or above it are never returned.
//
// Returns:
//   - The index of the first free bit, and true if one was found.
func (b bitmap) firstFree(limit int) (int, bool) {
	for w, word := range b {
		if word == fullWord {
			continue
		}
		i := w*bitsPerWord + bits.TrailingZeros64(^word)
		if i >= limit {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// grow returns a bitmap able to hold n bits. Existing bits are kept and the
// added words are zero.
func (b bitmap) grow(n int) bitmap {
	need := wordsFor(n)
	if need <= len(b) {
		return b
	}
	nb := make(bitmap, need)
	copy(nb, b)
	return nb
}

// count returns the number of set bits.
func (b bitmap) count() int {
	n := 0
	for _, word := range b {
		n += bits.OnesCount64(word)
	}
	return n
}
