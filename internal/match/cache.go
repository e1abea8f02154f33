// internal/match/cache.go
//
// Memoized ranking front end.
//
// Ranking is cheap but not free, and browse pages re-issue the same
// query on every keystroke.  Ranker keys computed results on the
// pantry revision plus the query, so any pantry mutation naturally
// invalidates every cached ranking.  Concurrent identical queries are
// collapsed through singleflight so only one computation runs.
package match

import (
	"container/list"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/larder/internal/catalog"
	"github.com/yanizio/larder/internal/metrics"
	"github.com/yanizio/larder/internal/pantry"
)

// DefaultCacheSize bounds the number of cached rankings.  Queries are
// user-typed, so the working set is tiny.
const DefaultCacheSize = 128

// Ranker serves ranked recipe lists over a pantry and a catalog.
type Ranker struct {
	pantry *pantry.Cache
	cat    *catalog.Catalog
	sfg    singleflight.Group

	mu   sync.Mutex
	cap  int
	ll   *list.List
	dict map[string]*list.Element
}

type entry struct {
	key     string
	results []Result
}

// NewRanker returns a Ranker with the default cache size.
func NewRanker(p *pantry.Cache, cat *catalog.Catalog) *Ranker {
	return &Ranker{
		pantry: p,
		cat:    cat,
		cap:    DefaultCacheSize,
		ll:     list.New(),
		dict:   make(map[string]*list.Element, DefaultCacheSize),
	}
}

// Rank returns the ranked, filtered recipe list for q, computing it at
// most once per (pantry revision, query) pair.
func (r *Ranker) Rank(q Query) []Result {
	metrics.MatchRequests.Inc()
	key := r.cacheKey(q)

	if res, ok := r.get(key); ok {
		metrics.MatchCacheHits.Inc()
		return res
	}

	v, _, _ := r.sfg.Do(key, func() (any, error) {
		if res, ok := r.get(key); ok {
			return res, nil
		}
		res := Rank(r.pantry.Names(), r.cat.All(), q)
		r.add(key, res)
		return res, nil
	})
	return v.([]Result)
}

// Detail scores a single recipe by id against the current pantry.
// Returns nil when the id is not in the catalog.
func (r *Ranker) Detail(id string) *Result {
	rec := r.cat.ByID(id)
	if rec == nil {
		return nil
	}
	res := Score(r.pantry.Names(), *rec)
	return &res
}

// cacheKey folds the pantry revision and the normalized query into one
// string.  Unit separators keep "a|b" + "c" distinct from "a" + "b|c".
func (r *Ranker) cacheKey(q Query) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(r.pantry.Revision(), 10))
	b.WriteByte(0x1f)
	b.WriteString(strings.ToLower(strings.TrimSpace(q.Search)))
	for _, t := range normalizeTerms(q.Ingredients) {
		b.WriteByte(0x1f)
		b.WriteString(t)
	}
	return b.String()
}

// get retrieves a cached ranking and marks it MRU.
func (r *Ranker) get(key string) ([]Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ele, hit := r.dict[key]; hit {
		r.ll.MoveToFront(ele)
		return ele.Value.(entry).results, true
	}
	return nil, false
}

// add inserts a ranking, evicting the LRU entry past capacity.
func (r *Ranker) add(key string, res []Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ele, hit := r.dict[key]; hit {
		ele.Value = entry{key, res}
		r.ll.MoveToFront(ele)
		return
	}
	ele := r.ll.PushFront(entry{key, res})
	r.dict[key] = ele
	if r.ll.Len() > r.cap {
		last := r.ll.Back()
		r.ll.Remove(last)
		delete(r.dict, last.Value.(entry).key)
	}
}
