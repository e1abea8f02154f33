// internal/web/pantry.go
//
// Pantry CRUD handlers.
//
// Thin JSON shims over the pantry cache: decode, call, map errors.
// All business rules (duplicate checks, validation, derived-structure
// upkeep) live in internal/pantry.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/larder/internal/pantry"
)

type addIngredientReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type pantryView struct {
	Ingredients []*pantry.Ingredient `json:"ingredients"`
	MostRecent  *pantry.Ingredient   `json:"mostRecent,omitempty"`
	Earliest    *pantry.Ingredient   `json:"earliest,omitempty"`
}

// getPantry returns the full pantry plus the last/first-added summary.
func (a *API) getPantry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pantryView{
		Ingredients: a.Pantry.Ingredients(),
		MostRecent:  a.Pantry.MostRecent(),
		Earliest:    a.Pantry.Earliest(),
	})
}

// addIngredient inserts a new pantry item.
func (a *API) addIngredient(w http.ResponseWriter, r *http.Request) {
	var req addIngredientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &pantry.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}

	rec, err := a.Pantry.Add(r.Context(), req.Name, req.Category, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// updateIngredient applies a partial update to one item.
func (a *API) updateIngredient(w http.ResponseWriter, r *http.Request) {
	var fields pantry.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, &pantry.ValidationError{Field: "body", Message: "malformed JSON"})
		return
	}

	rec, err := a.Pantry.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// removeIngredient deletes one item.
func (a *API) removeIngredient(w http.ResponseWriter, r *http.Request) {
	if err := a.Pantry.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clearPantry removes every item.  Idempotent.
func (a *API) clearPantry(w http.ResponseWriter, r *http.Request) {
	if err := a.Pantry.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pantryCategories returns the category grouping.
func (a *API) pantryCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": a.Pantry.ByCategory(),
	})
}

// relatedIngredients returns the similarity-graph neighbors of one
// item.  Unknown ids yield an empty list rather than an error.
func (a *API) relatedIngredients(w http.ResponseWriter, r *http.Request) {
	related := a.Pantry.RelatedTo(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{"related": related})
}
