package metadata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Store owns the decoded metadata document and the per-region cache built
// from it. Entries are built lazily on first access and memoized; the cache
// only grows (one entry per region code or calling code looked up, with
// misses memoized as nil entries too).
type Store struct {
	mu    sync.RWMutex
	doc   *document
	cache map[string]*PhoneMetadata
}

// NewStore decodes the given metadata document bytes.
func NewStore(raw []byte) (*Store, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	return &Store{doc: doc, cache: make(map[string]*PhoneMetadata)}, nil
}

// NewEmbeddedStore builds a store over the metadata document shipped with
// the library. The embedded document is known-good, so this cannot fail.
func NewEmbeddedStore() *Store {
	s, err := NewStore(Embedded())
	if err != nil {
		panic("metadata: embedded document is malformed: " + err.Error())
	}
	return s
}

// MetadataForRegion returns the dialling rules for an ISO 3166-1 alpha-2
// region code, or nil when the document has no entry for it.
func (s *Store) MetadataForRegion(regionCode string) *PhoneMetadata {
	if regionCode == "" {
		return nil
	}
	return s.metadataFor(strings.ToUpper(regionCode))
}

// MetadataForNonGeoEntity returns the rules for a non-geographical entity,
// addressed by its country calling code.
func (s *Store) MetadataForNonGeoEntity(countryCode int) *PhoneMetadata {
	return s.metadataFor(strconv.Itoa(countryCode))
}

func (s *Store) metadataFor(key string) *PhoneMetadata {
	s.mu.RLock()
	md, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return md
	}

	var built *PhoneMetadata
	if t := s.doc.findTerritory(key); t != nil {
		built = buildTerritory(t)
	}

	// Check-then-lock-then-recheck: a concurrent miss for the same region
	// may have built the entry already; the first insert wins.
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.cache[key]; ok {
		return existing
	}
	s.cache[key] = built
	return built
}

// RegionsForCountryCode returns the region codes sharing a country calling
// code, main region first, or nil for an unknown code.
func (s *Store) RegionsForCountryCode(countryCode int) []string {
	return CountryCodeToRegion[countryCode]
}

// Warm eagerly builds metadata for every region in the country-code table,
// loading regions concurrently. It fails on the first region the document
// cannot serve.
func (s *Store) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for countryCode, regions := range CountryCodeToRegion {
		countryCode, regions := countryCode, regions
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, region := range regions {
				if region == nonGeoEntityRegion {
					if s.MetadataForNonGeoEntity(countryCode) == nil {
						return fmt.Errorf("no metadata for non-geographical entity %d", countryCode)
					}
					continue
				}
				if s.MetadataForRegion(region) == nil {
					return fmt.Errorf("no metadata for region %s", region)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Reload replaces the backing document and drops every cached entry.
func (s *Store) Reload(raw []byte) error {
	doc, err := decodeDocument(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.cache = make(map[string]*PhoneMetadata)
	return nil
}

// RegionCount reports how many territory entries the document carries. Used
// for readiness reporting.
func (s *Store) RegionCount() int {
	return len(s.doc.territories)
}
