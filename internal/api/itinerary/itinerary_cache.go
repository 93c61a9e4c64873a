package itinerary

import (
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

// MemoKey identifies identical generation requests.
type MemoKey struct {
	Source      string
	Destination string
	Days        int
	Notes       string
}

func newMemoKey(req types.GenerateItineraryRequest) MemoKey {
	return MemoKey{
		Source:      req.Source,
		Destination: req.Destination,
		Days:        req.NumberOfDays,
		Notes:       req.Notes,
	}
}

func (k MemoKey) String() string {
	return fmt.Sprintf("itinerary:%q:%q:%d:%q", k.Source, k.Destination, k.Days, k.Notes)
}

// Memo stores successful generations. Implementations may be swapped for a
// bounded or shared cache without touching the generator.
type Memo interface {
	Get(key MemoKey) (types.Itinerary, bool)
	Put(key MemoKey, it types.Itinerary)
}

var _ Memo = (*CacheMemo)(nil)

// CacheMemo keeps entries for the lifetime of the process.
type CacheMemo struct {
	cache *cache.Cache
}

func NewCacheMemo() *CacheMemo {
	return &CacheMemo{cache: cache.New(cache.NoExpiration, 0)}
}

func (m *CacheMemo) Get(key MemoKey) (types.Itinerary, bool) {
	cached, found := m.cache.Get(key.String())
	if !found {
		return types.Itinerary{}, false
	}
	it, ok := cached.(types.Itinerary)
	if !ok {
		return types.Itinerary{}, false
	}
	return it.Clone(), true
}

func (m *CacheMemo) Put(key MemoKey, it types.Itinerary) {
	m.cache.Set(key.String(), it.Clone(), cache.NoExpiration)
}

// Len reports the number of memoized generations.
func (m *CacheMemo) Len() int {
	return m.cache.ItemCount()
}
