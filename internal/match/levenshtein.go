package match

// Distance computes the Levenshtein edit distance between two strings with
// unit costs for insertion, deletion, and substitution. The comparison is
// rune-based so Cyrillic and Latin characters count as single edits.
// The rolling two-row variant of the standard DP table keeps memory at
// O(len(b)); inputs here are short titles, so quadratic time is fine.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			ins := curr[j-1]
			del := prev[j]
			sub := prev[j-1]

			min := ins
			if del < min {
				min = del
			}
			if sub < min {
				min = sub
			}
			curr[j] = min + 1
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
