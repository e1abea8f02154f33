// internal/match/match.go
//
// Recipe matching and ranking.
//
// Context
// -------
// Rank is a pure function of the pantry's ingredient names, the recipe
// catalog, and the caller's filters.  Matching is a deliberately loose
// bidirectional substring test: pantry "tomato" matches recipe
// "tomatoes" and "cherry tomato".  No stemming, no synonyms; the
// looseness is the feature.
//
// Pipeline
// --------
//  1. Title/tag filter: an empty search term keeps everything;
//     otherwise the term must appear in the title or any tag.
//  2. Ingredient filter: when terms are given, keep recipes with at
//     least one ingredient matching at least one term (any-of).
//  3. Score: matched / total * 100; a recipe with no ingredients
//     scores 0 rather than dividing by zero.
//  4. Rank: stable sort descending by percent, so tied recipes keep
//     catalog order.
package match

import (
	"sort"
	"strings"

	"github.com/yanizio/larder/internal/catalog"
)

// Query carries the caller's filter state.
type Query struct {
	// Search filters by title or tag substring, case-insensitive.
	Search string
	// Ingredients keeps recipes whose ingredient list touches any of
	// these terms.  Empty means no ingredient filtering.
	Ingredients []string
}

// Result is one ranked recipe with its match breakdown.  Matched and
// Missing hold the recipe's own ingredient names in recipe order.
type Result struct {
	Recipe  catalog.Recipe `json:"recipe"`
	Matched []string       `json:"matchedIngredients"`
	Missing []string       `json:"missingIngredients"`
	Percent float64        `json:"matchPercentage"`
}

// Rank filters recipes by q, scores each survivor against the pantry,
// and returns results ordered best-first.  pantryNames are compared
// case-insensitively; callers normally pass pre-normalized names.
func Rank(pantryNames []string, recipes []catalog.Recipe, q Query) []Result {
	pantry := make([]string, len(pantryNames))
	for i, n := range pantryNames {
		pantry[i] = strings.ToLower(strings.TrimSpace(n))
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	terms := normalizeTerms(q.Ingredients)

	results := make([]Result, 0, len(recipes))
	for _, rec := range recipes {
		if !titleOrTagMatch(rec, search) {
			continue
		}
		if !ingredientFilterMatch(rec, terms) {
			continue
		}
		results = append(results, score(rec, pantry))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Percent > results[j].Percent
	})
	return results
}

// Score computes the match breakdown for a single recipe without any
// filtering.  Used by the recipe detail view.
func Score(pantryNames []string, rec catalog.Recipe) Result {
	pantry := make([]string, len(pantryNames))
	for i, n := range pantryNames {
		pantry[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return score(rec, pantry)
}

func titleOrTagMatch(rec catalog.Recipe, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Title), search) {
		return true
	}
	for _, tag := range rec.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func ingredientFilterMatch(rec catalog.Recipe, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, ing := range rec.Ingredients {
		low := strings.ToLower(ing)
		for _, term := range terms {
			if strings.Contains(low, term) || strings.Contains(term, low) {
				return true
			}
		}
	}
	return false
}

func score(rec catalog.Recipe, pantry []string) Result {
	res := Result{
		Recipe:  rec,
		Matched: make([]string, 0, len(rec.Ingredients)),
		Missing: make([]string, 0),
	}
	for _, ing := range rec.Ingredients {
		if inPantry(strings.ToLower(ing), pantry) {
			res.Matched = append(res.Matched, ing)
		} else {
			res.Missing = append(res.Missing, ing)
		}
	}
	if total := len(rec.Ingredients); total > 0 {
		res.Percent = float64(len(res.Matched)) / float64(total) * 100
	}
	return res
}

// inPantry applies the bidirectional substring rule against every
// pantry name.
func inPantry(ing string, pantry []string) bool {
	for _, have := range pantry {
		if have == "" {
			continue
		}
		if strings.Contains(have, ing) || strings.Contains(ing, have) {
			return true
		}
	}
	return false
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
