// internal/web/recipes.go
//
// Recipe browse and detail handlers.
//
// Browse runs the full filter-and-rank pipeline through the memoizing
// Ranker; detail scores one recipe directly.  Percentages are rounded
// to two decimals at this boundary only; the matcher itself stays
// full-precision.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/larder/internal/match"
)

type rankedRecipe struct {
	match.Result
	Percent float64 `json:"matchPercentage"`
}

func rounded(res match.Result) rankedRecipe {
	return rankedRecipe{Result: res, Percent: round2(res.Percent)}
}

// listRecipes returns the ranked, filtered catalog.
//
// Query parameters: `search` filters by title or tag substring, and a
// repeatable `ingredient` keeps recipes whose ingredient list touches
// any given term.
func (a *API) listRecipes(w http.ResponseWriter, r *http.Request) {
	q := match.Query{
		Search:      r.URL.Query().Get("search"),
		Ingredients: r.URL.Query()["ingredient"],
	}

	results := a.Ranker.Rank(q)
	out := make([]rankedRecipe, len(results))
	for i, res := range results {
		out[i] = rounded(res)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recipes":    out,
		"pantrySize": a.Pantry.Len(),
	})
}

// getRecipe returns one recipe with its match breakdown.
func (a *API) getRecipe(w http.ResponseWriter, r *http.Request) {
	res := a.Ranker.Detail(chi.URLParam(r, "id"))
	if res == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}
	writeJSON(w, http.StatusOK, rounded(*res))
}
