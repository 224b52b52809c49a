package histogram

import (
	"maps"
	"slices"
)

// ValueCountHistogram maps an integer key, usually a day offset from today,
// to a count. A key can be present with a zero count; presence matters to
// the load balancer, which prefers offsets that have never been recorded.
type ValueCountHistogram struct {
	counts map[int]int
}

// New creates an empty histogram.
func New() *ValueCountHistogram {
	return &ValueCountHistogram{counts: make(map[int]int)}
}

// Increment records one more use of key.
func (h *ValueCountHistogram) Increment(key int) {
	h.counts[key]++
}

// Set stores an explicit count for key, creating the entry if needed.
func (h *ValueCountHistogram) Set(key, count int) {
	h.counts[key] = count
}

// Get returns the count for key, 0 if absent.
func (h *ValueCountHistogram) Get(key int) int {
	return h.counts[key]
}

// HasEntryForDays reports whether key has ever been recorded.
func (h *ValueCountHistogram) HasEntryForDays(key int) bool {
	_, ok := h.counts[key]
	return ok
}

// Len returns the number of distinct keys.
func (h *ValueCountHistogram) Len() int {
	return len(h.counts)
}

// Keys returns the recorded keys in ascending order.
func (h *ValueCountHistogram) Keys() []int {
	return slices.Sorted(maps.Keys(h.counts))
}

// MaxValue returns the largest count, 0 for an empty histogram.
func (h *ValueCountHistogram) MaxValue() int {
	best := 0
	for _, c := range h.counts {
		best = max(best, c)
	}
	return best
}

// MaxKey returns the largest recorded key.
func (h *ValueCountHistogram) MaxKey() (int, bool) {
	if len(h.counts) == 0 {
		return 0, false
	}
	return slices.Max(slices.Collect(maps.Keys(h.counts))), true
}

// Sum returns the total of all counts.
func (h *ValueCountHistogram) Sum() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// WeightedSum returns the sum of key*count over all entries.
func (h *ValueCountHistogram) WeightedSum() int {
	total := 0
	for k, c := range h.counts {
		total += k * c
	}
	return total
}

// FindLeastUsedOffsetInRange searches [center-radius, center+radius] scanning
// outward from center, lower side first. The first offset that has never been
// recorded wins immediately. Otherwise the offset with the smallest count is
// returned; ties keep the one found first, i.e. the closest to center and then
// the smaller offset. The scan is bounded by radius.
func (h *ValueCountHistogram) FindLeastUsedOffsetInRange(center, radius int) int {
	best := center
	for i := 1; i <= radius; i++ {
		for _, offset := range [2]int{center - i, center + i} {
			if !h.HasEntryForDays(offset) {
				return offset
			}
			if h.Get(offset) < h.Get(best) {
				best = offset
			}
		}
	}
	return best
}

// Clone returns an independent copy.
func (h *ValueCountHistogram) Clone() *ValueCountHistogram {
	return &ValueCountHistogram{counts: maps.Clone(h.counts)}
}

// Bucket groups keys into buckets of the given width using floor division,
// so -1 falls in bucket -1 rather than 0. Counts in a bucket are summed.
func (h *ValueCountHistogram) Bucket(width int) *ValueCountHistogram {
	if width <= 1 {
		return h.Clone()
	}
	out := New()
	for k, c := range h.counts {
		b := k / width
		if k < 0 && k%width != 0 {
			b--
		}
		out.counts[b] += c
	}
	return out
}
