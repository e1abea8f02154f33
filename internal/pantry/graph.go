// internal/pantry/graph.go
//
// Similarity graph over pantry ingredients.
//
// One vertex per ingredient id.  An undirected edge joins two
// ingredients when they sit in different categories and one's
// normalized name is a substring of the other's (identical names
// included).  The build walks every unordered pair of distinct
// categories and tests every cross pair, which is quadratic in both
// category count and group size.  A trie or n-gram index would beat it
// asymptotically, but the input is one user's pantry.
//
// The graph is rebuilt wholesale alongside the category grouping on any
// membership or category change.  No incremental edge maintenance.
package pantry

import (
	"sort"
	"strings"
)

// Graph is an adjacency-set representation keyed by ingredient id.
type Graph struct {
	adj map[string]map[string]struct{}
}

// BuildGraph constructs the similarity graph for recs.
func BuildGraph(recs []*Ingredient) *Graph {
	g := &Graph{adj: make(map[string]map[string]struct{}, len(recs))}
	for _, rec := range recs {
		g.addVertex(rec.ID)
	}

	cats := BuildCategories(recs)
	labels := cats.Labels()
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			for _, a := range cats.Group(labels[i]) {
				for _, b := range cats.Group(labels[j]) {
					if similar(a, b) {
						g.addEdge(a.ID, b.ID)
					}
				}
			}
		}
	}
	return g
}

// similar reports whether either normalized name contains the other.
func similar(a, b *Ingredient) bool {
	ka, kb := a.Key(), b.Key()
	return strings.Contains(ka, kb) || strings.Contains(kb, ka)
}

func (g *Graph) addVertex(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[string]struct{})
	}
}

func (g *Graph) addEdge(a, b string) {
	g.addVertex(a)
	g.addVertex(b)
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Adjacent reports whether an edge joins a and b.
func (g *Graph) Adjacent(a, b string) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Related returns the ids adjacent to id in sorted order.  Unknown or
// isolated ids yield an empty slice.
func (g *Graph) Related(id string) []string {
	out := make([]string, 0, len(g.adj[id]))
	for other := range g.adj[id] {
		out = append(out, other)
	}
	sort.Strings(out)
	return out
}

// RemoveVertex deletes id and every incident edge.
func (g *Graph) RemoveVertex(id string) {
	for other := range g.adj[id] {
		delete(g.adj[other], id)
	}
	delete(g.adj, id)
}

// Vertices returns all vertex ids in sorted order.
func (g *Graph) Vertices() []string {
	out := make([]string, 0, len(g.adj))
	for id := range g.adj {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len reports the vertex count.
func (g *Graph) Len() int { return len(g.adj) }
