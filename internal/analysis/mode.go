package analysis

import (
	"cmp"
	"slices"
)

// Mode is the most frequent value of a field together with its frequency.
// OK is false when there were no observations.
type Mode[K comparable] struct {
	Value K
	Count int
	OK    bool
}

// counter tallies observations of one field
type counter[K comparable] struct {
	counts map[K]int
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(k K) {
	c.counts[k]++
}

// mode picks the highest count. Ties go to the key that sorts first under less,
// so the result does not depend on map iteration order.
func (c *counter[K]) mode(less func(a, b K) int) Mode[K] {
	var best Mode[K]
	for k, n := range c.counts {
		if !best.OK || n > best.Count || (n == best.Count && less(k, best.Value) < 0) {
			best = Mode[K]{Value: k, Count: n, OK: true}
		}
	}
	return best
}

// sorted returns every key with its count, highest count first, ties by key
func (c *counter[K]) sorted(less func(a, b K) int) []Count[K] {
	out := make([]Count[K], 0, len(c.counts))
	for k, n := range c.counts {
		out = append(out, Count[K]{Value: k, Count: n})
	}
	slices.SortFunc(out, func(a, b Count[K]) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return less(a.Value, b.Value)
	})
	return out
}

// Count is one entry of a frequency distribution
type Count[K comparable] struct {
	Value K
	Count int
}
