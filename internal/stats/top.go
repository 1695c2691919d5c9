package stats

import "sort"

// TopK returns the k numbers with the highest counts. Equal counts keep
// ascending number order, so zero-count numbers pad the tail in ascending order.
func TopK(t *Table, k int) []int {
	if t == nil || k <= 0 {
		return nil
	}
	type item struct {
		num   int
		count int
	}
	items := make([]item, 0, len(t.counts))
	for _, n := range t.Numbers() {
		items = append(items, item{num: n, count: t.Count(n)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].count > items[j].count
	})
	if k > len(items) {
		k = len(items)
	}
	out := make([]int, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, items[i].num)
	}
	return out
}
