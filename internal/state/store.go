package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/nvarley/shopkeep/internal/portal"
)

// Snapshot represents the latest catalog data available to the UI.
type Snapshot struct {
	User                *portal.User
	Products            []portal.Product
	Favourites          []portal.Product
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// Authenticated reports whether a session user is present.
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// IsOffline returns true when the API has been unreachable for multiple
// refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetUser records the session user. A nil user clears the catalog too, so a
// logout leaves nothing stale behind.
func (s *Store) SetUser(user *portal.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil {
		s.snapshot = Snapshot{}
		return
	}
	u := *user
	s.snapshot.User = &u
}

// Update replaces the stored catalog. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(products, favourites []portal.Product, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Products = cloneProducts(products)
	s.snapshot.Favourites = cloneProducts(favourites)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Products = cloneProducts(s.snapshot.Products)
	snap.Favourites = cloneProducts(s.snapshot.Favourites)
	if s.snapshot.User != nil {
		u := *s.snapshot.User
		snap.User = &u
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneProducts(items []portal.Product) []portal.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]portal.Product, len(items))
	copy(dup, items)
	return dup
}
