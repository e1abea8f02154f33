// internal/web/router.go
//
// API surface and route table.
//
// Routes
// ------
//	GET    /api/pantry                 full pantry + recency summary
//	POST   /api/pantry                 add ingredient
//	DELETE /api/pantry                 clear pantry
//	GET    /api/pantry/categories      grouped by category
//	PUT    /api/pantry/{id}            partial update
//	DELETE /api/pantry/{id}            remove
//	GET    /api/pantry/{id}/related    similarity-graph neighbors
//	GET    /api/recipes                ranked browse (?search=&ingredient=)
//	GET    /api/recipes/{id}           detail with match breakdown
//	GET    /metrics                    Prometheus
//	GET    /healthz                    liveness
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/larder/internal/catalog"
	"github.com/yanizio/larder/internal/match"
	"github.com/yanizio/larder/internal/middleware"
	"github.com/yanizio/larder/internal/pantry"
)

// API bundles the handlers' collaborators.
type API struct {
	Pantry  *pantry.Cache
	Catalog *catalog.Catalog
	Ranker  *match.Ranker
}

// NewAPI wires an API over a loaded pantry cache and catalog.
func NewAPI(p *pantry.Cache, cat *catalog.Catalog) *API {
	return &API{
		Pantry:  p,
		Catalog: cat,
		Ranker:  match.NewRanker(p, cat),
	}
}

// Router builds the chi mux with logging and security middleware.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(AccessLog)
	r.Use(middleware.Security)

	r.Route("/api", func(r chi.Router) {
		r.Route("/pantry", func(r chi.Router) {
			r.Get("/", a.getPantry)
			r.Post("/", a.addIngredient)
			r.Delete("/", a.clearPantry)
			r.Get("/categories", a.pantryCategories)
			r.Put("/{id}", a.updateIngredient)
			r.Delete("/{id}", a.removeIngredient)
			r.Get("/{id}/related", a.relatedIngredients)
		})
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", a.listRecipes)
			r.Get("/{id}", a.getRecipe)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
