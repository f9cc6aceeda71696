package ledger

// forEachCombination calls visit with every k-element index combination of
// 0..n-1 in lexicographic order. The slice passed to visit is reused between
// calls. Enumeration stops early when visit returns false, in which case
// forEachCombination returns false as well.
func forEachCombination(n, k int, visit func(idx []int) bool) bool {
	if k <= 0 || k > n {
		return true
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !visit(idx) {
			return false
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return true
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
