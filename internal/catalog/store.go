package catalog

import (
	"sort"
	"strings"
	"sync"

	apperrors "github.com/anshulpatil/catalog-search/pkg/errors"
)

// Store is the authoritative in-memory product collection plus three
// inverted indexes (keyword, brand, category) mapping each key to the set
// of product IDs filed under it. A single RWMutex guards the collection and
// all indexes together, so no reader can observe a product present in the
// collection but missing from an index, or the reverse.
//
// Index maintenance is remove-then-reinsert: every mutation first removes
// the product from every key it was previously filed under, then reindexes
// it from fresh derived values. Keys are never patched incrementally.
type Store struct {
	mu       sync.RWMutex
	products map[int64]*Product
	nextID   int64

	keywordIndex  map[string]map[int64]struct{}
	brandIndex    map[string]map[int64]struct{}
	categoryIndex map[string]map[int64]struct{}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		products:      make(map[int64]*Product),
		nextID:        1,
		keywordIndex:  make(map[string]map[int64]struct{}),
		brandIndex:    make(map[string]map[int64]struct{}),
		categoryIndex: make(map[string]map[int64]struct{}),
	}
}

// Create assigns the next ID to p, derives its search text, and indexes it.
// It returns the stored product.
func (s *Store) Create(p *Product) *Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	p.RefreshSearchText()
	s.products[p.ID] = p
	s.indexProduct(p)
	return p
}

// Insert stores a product that already carries an ID (e.g. loaded from the
// durable store) and keeps the ID sequence ahead of it.
func (s *Store) Insert(p *Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	p.RefreshSearchText()
	if old, ok := s.products[p.ID]; ok {
		s.deindexProduct(old)
	}
	s.products[p.ID] = p
	s.indexProduct(p)
}

// Update replaces the product with p.ID. The stale product is removed from
// every index key before the fresh one is reinserted.
func (s *Store) Update(p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.products[p.ID]
	if !ok {
		return apperrors.ErrProductNotFound
	}
	s.deindexProduct(old)
	p.RefreshSearchText()
	s.products[p.ID] = p
	s.indexProduct(p)
	return nil
}

// Delete removes the product and all its index entries.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return apperrors.ErrProductNotFound
	}
	s.deindexProduct(p)
	delete(s.products, id)
	return nil
}

// Get returns the product with the given ID.
func (s *Store) Get(id int64) (*Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

// Len returns the number of products in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// KeywordCount returns the number of distinct keys in the keyword index.
func (s *Store) KeywordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keywordIndex)
}

// View runs fn under the read lock. Every lookup made through the Txn sees
// one consistent state of the collection and its indexes, which is what the
// search pipeline requires across its collect/filter/rank passes.
func (s *Store) View(fn func(tx *Txn)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&Txn{s: s})
}

// Txn is a read-only view of the store, valid only inside View.
type Txn struct {
	s *Store
}

// All returns every product ordered by ID.
func (tx *Txn) All() []*Product {
	result := make([]*Product, 0, len(tx.s.products))
	for _, p := range tx.s.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ByID returns the product with the given ID.
func (tx *Txn) ByID(id int64) (*Product, bool) {
	p, ok := tx.s.products[id]
	return p, ok
}

// ByKeyword returns the IDs filed under the exact token in the keyword index.
func (tx *Txn) ByKeyword(token string) map[int64]struct{} {
	return tx.s.keywordIndex[strings.ToLower(token)]
}

// ByBrand returns the IDs filed under the brand.
func (tx *Txn) ByBrand(brand string) map[int64]struct{} {
	return tx.s.brandIndex[strings.ToLower(brand)]
}

// ByCategory returns the IDs filed under the category.
func (tx *Txn) ByCategory(category string) map[int64]struct{} {
	return tx.s.categoryIndex[strings.ToLower(category)]
}

// indexProduct files p under its brand, category, and every search keyword.
// Callers must hold the write lock.
func (s *Store) indexProduct(p *Product) {
	if brand := strings.ToLower(p.Brand); brand != "" {
		addToIndex(s.brandIndex, brand, p.ID)
	}
	if category := strings.ToLower(p.Category); category != "" {
		addToIndex(s.categoryIndex, category, p.ID)
	}
	for _, kw := range p.SearchKeywords {
		addToIndex(s.keywordIndex, kw, p.ID)
	}
}

// deindexProduct removes p from every key it is filed under, pruning empty
// buckets. Callers must hold the write lock.
func (s *Store) deindexProduct(p *Product) {
	if brand := strings.ToLower(p.Brand); brand != "" {
		removeFromIndex(s.brandIndex, brand, p.ID)
	}
	if category := strings.ToLower(p.Category); category != "" {
		removeFromIndex(s.categoryIndex, category, p.ID)
	}
	for _, kw := range p.SearchKeywords {
		removeFromIndex(s.keywordIndex, kw, p.ID)
	}
}

func addToIndex(index map[string]map[int64]struct{}, key string, id int64) {
	bucket, ok := index[key]
	if !ok {
		bucket = make(map[int64]struct{})
		index[key] = bucket
	}
	bucket[id] = struct{}{}
}

func removeFromIndex(index map[string]map[int64]struct{}, key string, id int64) {
	bucket, ok := index[key]
	if !ok {
		return
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(index, key)
	}
}
