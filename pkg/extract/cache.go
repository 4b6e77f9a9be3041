package extract

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// editionGuess is one memoized edition lookup.
type editionGuess struct {
	edition   string
	ambiguous bool
}

// Cache memoizes edition guesses keyed by reporter and year. A guess
// is a pure function of the reporter database, so entries stay valid
// for the life of the database; the TTL only bounds memory on hosts
// that feed unbounded reporter strings through custom extractors.
type Cache struct {
	store *gocache.Cache
}

// NewCache returns an edition cache with a one-hour TTL.
func NewCache() *Cache {
	return &Cache{store: gocache.New(time.Hour, 10*time.Minute)}
}

func (c *Cache) get(key string) (editionGuess, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return editionGuess{}, false
	}
	g, ok := v.(editionGuess)
	return g, ok
}

func (c *Cache) set(key string, g editionGuess) {
	c.store.Set(key, g, gocache.DefaultExpiration)
}

// Len reports the number of memoized guesses.
func (c *Cache) Len() int { return c.store.ItemCount() }

// Clear drops every memoized guess.
func (c *Cache) Clear() { c.store.Flush() }
