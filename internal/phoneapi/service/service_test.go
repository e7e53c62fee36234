package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"phonekit/internal/lookupcache"
	"phonekit/internal/phoneapi/transport"
	"phonekit/phonenumbers"
	"phonekit/phonenumbers/metadata"
	"phonekit/phonenumbers/metadata/source"
	"phonekit/platform/apperr"
	"phonekit/platform/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	util := phonenumbers.New(metadata.NewEmbeddedStore())
	return New(util, nil, source.Bytes(metadata.Embedded()), "embedded", "US", logger.New("development"))
}

func TestLookup(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Lookup(context.Background(), transport.ParseRequest{Number: "1-650-253-0000"})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if resp.Number.CountryCode != 1 || resp.Number.NationalNumber != 6502530000 {
		t.Fatalf("unexpected number: %+v", resp.Number)
	}
	if resp.E164 != "+16502530000" {
		t.Fatalf("unexpected e164: %s", resp.E164)
	}
	if !resp.Valid || resp.Type != "FIXED_LINE_OR_MOBILE" || resp.RegionCode != "US" {
		t.Fatalf("unexpected classification: %+v", resp)
	}
	if resp.NationalForm != "(650) 253-0000" {
		t.Fatalf("unexpected national form: %s", resp.NationalForm)
	}
}

func TestLookup_KeepRawInput(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Lookup(context.Background(), transport.ParseRequest{
		Number:       "011 44 7912345678",
		KeepRawInput: true,
	})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if resp.Number.RawInput != "011 44 7912345678" {
		t.Fatalf("raw input not preserved: %q", resp.Number.RawInput)
	}
	if resp.Number.CountryCodeSource != "FROM_NUMBER_WITH_IDD" {
		t.Fatalf("unexpected source: %s", resp.Number.CountryCodeSource)
	}
}

func TestLookup_ParseErrorsMapToKinds(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Lookup(context.Background(), transport.ParseRequest{Number: "not a number"})
	if !apperr.Is(err, apperr.KindUnprocessable) {
		t.Fatalf("expected unprocessable, got %v", err)
	}
	_, err = svc.Lookup(context.Background(), transport.ParseRequest{Number: "+002530000"})
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestLookup_UsesCache(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	cache := lookupcache.New(client, time.Hour, logger.New("development"))

	util := phonenumbers.New(metadata.NewEmbeddedStore())
	svc := New(util, cache, source.Bytes(metadata.Embedded()), "embedded", "US", logger.New("development"))

	ctx := context.Background()
	req := transport.ParseRequest{Number: "650-253-0000"}
	first, err := svc.Lookup(ctx, req)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if _, ok := cache.Get(ctx, lookupcache.Key("US", req.Number)); !ok {
		t.Fatalf("expected result to be cached")
	}
	second, err := svc.Lookup(ctx, req)
	if err != nil {
		t.Fatalf("cached lookup failed: %v", err)
	}
	if *second != *first {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestValidate(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Validate(context.Background(), transport.ValidateRequest{Number: "650-253-0000"})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !resp.Valid || resp.RegionCode != "US" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	pinned, err := svc.Validate(context.Background(), transport.ValidateRequest{
		Number: "650-253-0000",
		Region: "GB",
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if pinned.Valid {
		t.Fatalf("US number should not be valid for GB")
	}
}

func TestFormatNumber(t *testing.T) {
	svc := newTestService(t)
	cases := []struct {
		req  transport.FormatRequest
		want string
	}{
		{transport.FormatRequest{Number: "6502530000", Format: "NATIONAL"}, "(650) 253-0000"},
		{transport.FormatRequest{Number: "6502530000", Format: "E164"}, "+16502530000"},
		{transport.FormatRequest{Number: "6502530000", Format: "RFC3966"}, "tel:+1-650-253-0000"},
		{transport.FormatRequest{Number: "6502530000", Format: "INTERNATIONAL", FromRegion: "DE"}, "00 1 650-253-0000"},
	}
	for _, tc := range cases {
		resp, err := svc.FormatNumber(context.Background(), tc.req)
		if err != nil {
			t.Fatalf("format failed: %v", err)
		}
		if resp.Formatted != tc.want {
			t.Errorf("format %+v = %q, want %q", tc.req, resp.Formatted, tc.want)
		}
	}
}

func TestNddPrefix(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.NddPrefix("US", false)
	if err != nil {
		t.Fatalf("ndd prefix failed: %v", err)
	}
	if resp.NationalPrefix != "1" {
		t.Fatalf("unexpected prefix: %s", resp.NationalPrefix)
	}
	if _, err := svc.NddPrefix("IT", false); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for IT, got %v", err)
	}
}

func TestRegionForCountryCode(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.RegionForCountryCode(800)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if resp.RegionCode != "001" {
		t.Fatalf("unexpected region: %s", resp.RegionCode)
	}
	if _, err := svc.RegionForCountryCode(999); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReloadMetadata(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.ReloadMetadata(context.Background())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if resp.Regions == 0 || resp.Source != "embedded" {
		t.Fatalf("unexpected reload response: %+v", resp)
	}
	if err := svc.Ping(context.Background()); err != nil {
		t.Fatalf("service should be ready after reload: %v", err)
	}
}

func TestReloadMetadata_NoSource(t *testing.T) {
	util := phonenumbers.New(metadata.NewEmbeddedStore())
	svc := New(util, nil, nil, "embedded", "US", logger.New("development"))
	if _, err := svc.ReloadMetadata(context.Background()); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}
