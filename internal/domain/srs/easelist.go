package srs

// EaseList keeps a running average ease per note path. It is built from the
// schedules found while loading a collection and looked up when a new card
// or note needs a starting ease.
type EaseList struct {
	sums   map[string]float64
	counts map[string]int
}

// NewEaseList creates an empty list.
func NewEaseList() *EaseList {
	return &EaseList{
		sums:   make(map[string]float64),
		counts: make(map[string]int),
	}
}

// Add folds one more ease into the average of path. Non-positive eases are ignored.
func (l *EaseList) Add(path string, ease float64) {
	if ease <= 0 {
		return
	}
	l.sums[path] += ease
	l.counts[path]++
}

// Average returns the mean ease recorded for path.
func (l *EaseList) Average(path string) (float64, bool) {
	n := l.counts[path]
	if n == 0 {
		return 0, false
	}
	return l.sums[path] / float64(n), true
}

// Len returns the number of paths with at least one ease.
func (l *EaseList) Len() int {
	return len(l.counts)
}
