package match

import "github.com/kvasnikov/cinebot/internal/provider"

// Result is the winning candidate with its display title resolved.
type Result struct {
	// Title is never empty: it falls back from the candidate's Name to its
	// AlternativeName, and finally to the original, unnormalized query.
	Title string
	Movie provider.Movie
}

// SelectBest scans candidates in order and returns the one whose Name is
// closest to the query under Levenshtein distance over normalized strings.
// Ties keep the first-seen candidate; a later one wins only on a strictly
// smaller distance. Returns ok=false only for an empty candidate list.
//
// Scoring compares the Name field alone. AlternativeName is deliberately
// a display fallback only, never a scoring input: the catalog's localized
// Name is what users type, and scoring against both would let a foreign
// alternate title shadow a closer local one.
func SelectBest(query string, candidates []provider.Movie) (Result, bool) {
	if len(candidates) == 0 {
		return Result{}, false
	}

	normQuery := Normalize(query)

	best := -1
	var winner provider.Movie
	for _, c := range candidates {
		d := Distance(Normalize(c.Name), normQuery)
		if best < 0 || d < best {
			best = d
			winner = c
		}
	}

	title := winner.Name
	if title == "" {
		title = winner.AlternativeName
	}
	if title == "" {
		title = query
	}

	return Result{Title: title, Movie: winner}, true
}
