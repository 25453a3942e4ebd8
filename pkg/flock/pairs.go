package flock

// forEachPair calls visit exactly once for every unordered pair (i, j) with
// i < j < n and lo <= i < hi. Splitting [0, n) into row ranges lets workers
// share the pair set without overlap.
func forEachPair(lo, hi, n int, visit func(i, j int)) {
	for i := lo; i < hi; i++ {
		for j := i + 1; j < n; j++ {
			visit(i, j)
		}
	}
}

// pairCount is the number of pairs visited by forEachPair for rows [lo, hi).
// Row i owns n-1-i pairs; the sum over [lo, hi) is an arithmetic series.
func pairCount(lo, hi, n int) int {
	if hi <= lo {
		return 0
	}
	return (hi - lo) * (2*n - lo - hi - 1) / 2
}

// splitRows cuts [0, n) into at most parts row ranges carrying roughly the
// same number of pairs. Early rows own more pairs, so they get narrower ranges.
func splitRows(n, parts int) [][2]int {
	if n < 2 || parts < 1 {
		return nil
	}
	total := pairCount(0, n, n)
	if parts > total {
		parts = total
	}
	target := (total + parts - 1) / parts

	ranges := make([][2]int, 0, parts)
	lo := 0
	for i := 0; i < n-1; i++ {
		if pairCount(lo, i+1, n) >= target {
			ranges = append(ranges, [2]int{lo, i + 1})
			lo = i + 1
		}
	}
	if lo < n-1 {
		ranges = append(ranges, [2]int{lo, n - 1})
	}
	return ranges
}
