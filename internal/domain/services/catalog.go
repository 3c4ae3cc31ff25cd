package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rabindrakharel/pmo-core/internal/domain/entities"
	"github.com/rabindrakharel/pmo-core/internal/domain/ports"
)

// validTypeCodeRegex allows alphanumeric and underscores only.
var validTypeCodeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// CatalogService manages the entity type catalog. Reads go through an
// in-memory cache with a bounded TTL: type metadata changes rarely, so
// a stale read inside the TTL window is an accepted tradeoff. Writes
// invalidate the cache explicitly.
type CatalogService struct {
	store ports.Store
	ttl   time.Duration

	cacheMu     sync.RWMutex
	cache       map[string]*entities.EntityType
	cacheExpiry time.Time
}

// NewCatalogService creates a new CatalogService. A non-positive ttl
// disables caching entirely.
func NewCatalogService(store ports.Store, ttl time.Duration) *CatalogService {
	return &CatalogService{
		store: store,
		ttl:   ttl,
	}
}

// Seed installs the default entity types if the catalog is empty.
func (s *CatalogService) Seed(ctx context.Context) error {
	existing, err := s.store.ListEntityTypes(ctx)
	if err != nil {
		return fmt.Errorf("listing entity types: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, et := range entities.DefaultEntityTypes {
		etCopy := et
		if err := s.store.SaveEntityType(ctx, &etCopy); err != nil {
			return fmt.Errorf("seeding entity type %s: %w", et.Code, err)
		}
	}
	s.invalidateCache()
	return nil
}

// Get returns the entity type for code, or ErrNotFound.
func (s *CatalogService) Get(ctx context.Context, code string) (*entities.EntityType, error) {
	types, err := s.cached(ctx)
	if err != nil {
		return nil, err
	}
	et, ok := types[code]
	if !ok {
		return nil, fmt.Errorf("entity type %q: %w", code, entities.ErrNotFound)
	}
	return et, nil
}

// List returns all entity types, optionally including inactive ones.
func (s *CatalogService) List(ctx context.Context, includeInactive bool) ([]entities.EntityType, error) {
	all, err := s.store.ListEntityTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entity types: %w", err)
	}
	if includeInactive {
		return all, nil
	}

	result := make([]entities.EntityType, 0, len(all))
	for _, et := range all {
		if et.Active {
			result = append(result, et)
		}
	}
	return result, nil
}

// ParentTypesOf returns the codes of every active type that allows
// childCode as a child. Inverse lookup over AllowedChildCodes.
func (s *CatalogService) ParentTypesOf(ctx context.Context, childCode string) ([]string, error) {
	types, err := s.cached(ctx)
	if err != nil {
		return nil, err
	}

	var parents []string
	for code, et := range types {
		if et.AllowsChild(childCode) {
			parents = append(parents, code)
		}
	}
	sort.Strings(parents)
	return parents, nil
}

// IsValid reports whether code names an active entity type.
func (s *CatalogService) IsValid(ctx context.Context, code string) bool {
	types, err := s.cached(ctx)
	if err != nil {
		return false
	}
	_, ok := types[code]
	return ok
}

// Save creates or updates an entity type and invalidates the cache.
func (s *CatalogService) Save(ctx context.Context, et *entities.EntityType) error {
	et.Code = strings.ToLower(strings.TrimSpace(et.Code))
	if !validTypeCodeRegex.MatchString(et.Code) {
		return errors.New("invalid type code: must be lowercase alphanumeric with underscores, starting with a letter")
	}
	if et.Label == "" {
		return errors.New("type label is required")
	}

	if err := s.store.SaveEntityType(ctx, et); err != nil {
		return fmt.Errorf("saving entity type: %w", err)
	}
	s.invalidateCache()
	return nil
}

// Deactivate marks an entity type inactive. Existing instances and
// edges are untouched; the type just stops validating new writes.
func (s *CatalogService) Deactivate(ctx context.Context, code string) error {
	et, err := s.store.FindEntityType(ctx, code)
	if err != nil {
		return fmt.Errorf("finding entity type: %w", err)
	}
	if et == nil {
		return fmt.Errorf("entity type %q: %w", code, entities.ErrNotFound)
	}

	et.Active = false
	if err := s.store.SaveEntityType(ctx, et); err != nil {
		return fmt.Errorf("deactivating entity type: %w", err)
	}
	s.invalidateCache()
	return nil
}

// cached returns the active types keyed by code, refreshing from the
// store when the cache has expired. Refresh is serialized behind the
// write lock with a double check so concurrent readers trigger at most
// one reload.
func (s *CatalogService) cached(ctx context.Context) (map[string]*entities.EntityType, error) {
	s.cacheMu.RLock()
	if s.cache != nil && time.Now().Before(s.cacheExpiry) {
		cache := s.cache
		s.cacheMu.RUnlock()
		return cache, nil
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cache != nil && time.Now().Before(s.cacheExpiry) {
		return s.cache, nil
	}

	types, err := s.store.ListEntityTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entity types: %w", err)
	}

	cache := make(map[string]*entities.EntityType, len(types))
	for i := range types {
		if types[i].Active {
			cache[types[i].Code] = &types[i]
		}
	}
	s.cache = cache
	s.cacheExpiry = time.Now().Add(s.ttl)
	return cache, nil
}

func (s *CatalogService) invalidateCache() {
	s.cacheMu.Lock()
	s.cache = nil
	s.cacheMu.Unlock()
}
