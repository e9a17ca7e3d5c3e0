package textutils

import (
	"github.com/agnivade/levenshtein"
)

// Closest returns the candidate whose normalized form has the smallest edit
// distance to target's normalized form, provided that distance is at most
// maxDistance. Ties go to the earliest candidate. Blank candidates are ignored.
func Closest(target string, candidates []string, maxDistance int) (string, bool) {
	key := Normalize(target)
	if key == "" || maxDistance < 0 {
		return "", false
	}

	best, bestDist := "", maxDistance+1
	for _, c := range candidates {
		ck := Normalize(c)
		if ck == "" {
			continue
		}
		d := levenshtein.ComputeDistance(key, ck)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist > maxDistance {
		return "", false
	}
	return best, true
}
