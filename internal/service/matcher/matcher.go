// Package matcher snaps free-text service names onto a tenant's catalog.
package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// minThreshold is the edit distance always tolerated, however short the name.
const minThreshold = 3

// Result describes the best candidate for a raw service name.
// Distance is -1 when nothing was scored.
type Result struct {
	Name     string
	Distance int
	Matched  bool
}

// Match scores raw against every candidate, case-insensitively, and returns the
// closest one if it is within Threshold of that candidate. Ties go to the
// earliest candidate. When nothing qualifies Name is raw.
func Match(raw string, candidates []string) Result {
	if raw == "" || len(candidates) == 0 {
		return Result{Name: raw, Distance: -1}
	}

	needle := strings.ToLower(raw)
	best, bestDist := -1, 0
	for i, c := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	if bestDist > Threshold(candidates[best]) {
		return Result{Name: raw, Distance: bestDist}
	}
	return Result{Name: candidates[best], Distance: bestDist, Matched: true}
}

// Reconcile returns the canonical name for raw, or raw itself.
func Reconcile(raw string, candidates []string) string {
	return Match(raw, candidates).Name
}

// Threshold is the largest edit distance accepted for candidate.
func Threshold(candidate string) int {
	return max(minThreshold, utf8.RuneCountInString(candidate)/2)
}
