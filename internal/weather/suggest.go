package weather

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the known city closest to query, if it is close enough
// to be a plausible typo. Matching is case-insensitive; an exact match is
// not a suggestion.
func Suggest(query string, known []string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(known) == 0 {
		return "", false
	}
	type candidate struct {
		name string
		dist int
	}
	cands := make([]candidate, 0, len(known))
	for _, k := range known {
		name := strings.TrimSpace(k)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if lower == q {
			return "", false
		}
		cands = append(cands, candidate{name: name, dist: levenshtein.ComputeDistance(q, lower)})
	}
	if len(cands) == 0 {
		return "", false
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	best := cands[0]
	limit := max(2, len([]rune(q))/3)
	if best.dist > limit {
		return "", false
	}
	return best.name, true
}
