package metadata

import (
	"context"
	"sync"
	"testing"
)

func TestWarm(t *testing.T) {
	store := NewEmbeddedStore()
	if err := store.Warm(context.Background()); err != nil {
		t.Fatalf("warm failed: %v", err)
	}
	for countryCode, regions := range CountryCodeToRegion {
		for _, region := range regions {
			if region == nonGeoEntityRegion {
				if store.MetadataForNonGeoEntity(countryCode) == nil {
					t.Errorf("non-geo entity %d missing after warm", countryCode)
				}
				continue
			}
			if store.MetadataForRegion(region) == nil {
				t.Errorf("region %s missing after warm", region)
			}
		}
	}
}

func TestWarm_FailsOnIncompleteDocument(t *testing.T) {
	// A document that serves only one region cannot cover the whole
	// country-code table.
	store, err := NewStore([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("document should decode: %v", err)
	}
	if err := store.Warm(context.Background()); err == nil {
		t.Fatalf("expected warm to fail on incomplete document")
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewEmbeddedStore()
	var wg sync.WaitGroup
	regions := []string{"US", "GB", "DE", "IT", "AR", "MX", "BR", "AU", "SG", "BS"}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, region := range regions {
				if store.MetadataForRegion(region) == nil {
					t.Errorf("no metadata for %s", region)
				}
			}
		}()
	}
	wg.Wait()

	// Every goroutine must have observed the same cached entry.
	first := store.MetadataForRegion("US")
	if first != store.MetadataForRegion("US") {
		t.Fatalf("cache did not memoize")
	}
}

func TestRegionsForCountryCode(t *testing.T) {
	store := NewEmbeddedStore()
	regions := store.RegionsForCountryCode(1)
	if len(regions) != 2 || regions[0] != "US" || regions[1] != "BS" {
		t.Fatalf("unexpected regions for code 1: %v", regions)
	}
	if store.RegionsForCountryCode(999) != nil {
		t.Fatalf("unknown code should have no regions")
	}
}
