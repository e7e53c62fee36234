// Package service implements the phone API operations on top of the
// phonenumbers core.
package service

import (
	"context"
	"fmt"

	"phonekit/internal/lookupcache"
	"phonekit/internal/phoneapi/transport"
	"phonekit/phonenumbers"
	"phonekit/phonenumbers/metadata/source"
	"phonekit/platform/apperr"
	"phonekit/platform/logger"

	"github.com/goccy/go-json"
)

// Service answers phone lookups. It owns the Util (and through it the
// metadata store) plus the optional Redis lookup cache.
type Service struct {
	util          *phonenumbers.Util
	cache         *lookupcache.Cache
	metadataSrc   source.Source
	sourceName    string
	defaultRegion string
	log           *logger.Logger
}

// New creates the service. metadataSrc may be nil when the embedded
// document is used and reloading is not supported.
func New(util *phonenumbers.Util, cache *lookupcache.Cache, metadataSrc source.Source,
	sourceName, defaultRegion string, log *logger.Logger) *Service {
	return &Service{
		util:          util,
		cache:         cache,
		metadataSrc:   metadataSrc,
		sourceName:    sourceName,
		defaultRegion: defaultRegion,
		log:           log,
	}
}

// Util exposes the bound phonenumbers.Util for other modules.
func (s *Service) Util() *phonenumbers.Util {
	return s.util
}

// Lookup parses the number and assembles the full lookup result, consulting
// the cache first. Only requests that do not ask for raw input are cached;
// the raw variant is rare and cheap enough to recompute.
func (s *Service) Lookup(ctx context.Context, req transport.ParseRequest) (*transport.ParseResponse, error) {
	region := s.regionOrDefault(req.DefaultRegion)

	cacheKey := lookupcache.Key(region, req.Number)
	if !req.KeepRawInput {
		if payload, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached transport.ParseResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var number *phonenumbers.PhoneNumber
	var err error
	if req.KeepRawInput {
		number, err = s.util.ParseAndKeepRawInput(req.Number, region)
	} else {
		number, err = s.util.Parse(req.Number, region)
	}
	if err != nil {
		s.log.WithContext(ctx).ParseFailure(region, req.Number, err)
		return nil, s.mapParseError(err)
	}

	resp := &transport.ParseResponse{
		Number:       toNumberResponse(number, req.KeepRawInput),
		E164:         s.util.Format(number, phonenumbers.E164),
		Valid:        s.util.IsValidNumber(number),
		Type:         typeName(s.util.GetNumberType(number)),
		RegionCode:   s.util.GetRegionCodeForNumber(number),
		NationalForm: s.util.Format(number, phonenumbers.National),
	}

	if !req.KeepRawInput {
		if payload, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, cacheKey, payload)
		}
	}
	return resp, nil
}

// Validate parses and classifies a number, optionally pinning validity to a
// specific region.
func (s *Service) Validate(ctx context.Context, req transport.ValidateRequest) (*transport.ValidateResponse, error) {
	region := s.regionOrDefault(req.DefaultRegion)
	number, err := s.util.Parse(req.Number, region)
	if err != nil {
		s.log.WithContext(ctx).ParseFailure(region, req.Number, err)
		return nil, s.mapParseError(err)
	}

	valid := false
	if req.Region != "" {
		valid = s.util.IsValidNumberForRegion(number, req.Region)
	} else {
		valid = s.util.IsValidNumber(number)
	}
	return &transport.ValidateResponse{
		Valid:      valid,
		Type:       typeName(s.util.GetNumberType(number)),
		RegionCode: s.util.GetRegionCodeForNumber(number),
	}, nil
}

// FormatNumber parses and renders a number in the requested presentation.
func (s *Service) FormatNumber(ctx context.Context, req transport.FormatRequest) (*transport.FormatResponse, error) {
	region := s.regionOrDefault(req.DefaultRegion)
	number, err := s.util.Parse(req.Number, region)
	if err != nil {
		s.log.WithContext(ctx).ParseFailure(region, req.Number, err)
		return nil, s.mapParseError(err)
	}

	if req.FromRegion != "" {
		return &transport.FormatResponse{
			Formatted: s.util.FormatOutOfCountryCallingNumber(number, req.FromRegion),
		}, nil
	}

	format, err := formatFromName(req.Format)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	return &transport.FormatResponse{Formatted: s.util.Format(number, format)}, nil
}

// NddPrefix returns a region's national dialling prefix.
func (s *Service) NddPrefix(regionCode string, stripNonDigits bool) (*transport.NddPrefixResponse, error) {
	prefix := s.util.GetNddPrefixForRegion(regionCode, stripNonDigits)
	if prefix == "" {
		return nil, apperr.NotFound("no national dialling prefix for region").WithOp("phoneapi.NddPrefix")
	}
	return &transport.NddPrefixResponse{RegionCode: regionCode, NationalPrefix: prefix}, nil
}

// RegionForCountryCode resolves the main region of a calling code.
func (s *Service) RegionForCountryCode(countryCode int) (*transport.RegionForCountryCodeResponse, error) {
	regionCode := s.util.GetRegionCodeForCountryCode(countryCode)
	if regionCode == phonenumbers.UnknownRegion {
		return nil, apperr.NotFound("unknown country calling code").WithOp("phoneapi.RegionForCountryCode")
	}
	return &transport.RegionForCountryCodeResponse{CountryCode: countryCode, RegionCode: regionCode}, nil
}

// ReloadMetadata refetches the metadata document, swaps it into the store,
// re-warms the cache and drops stale lookup results.
func (s *Service) ReloadMetadata(ctx context.Context) (*transport.ReloadResponse, error) {
	if s.metadataSrc == nil {
		return nil, apperr.BadRequest("metadata source does not support reloading").WithOp("phoneapi.ReloadMetadata")
	}
	raw, err := s.metadataSrc.Fetch(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "fetching metadata document failed", err).WithOp("phoneapi.ReloadMetadata")
	}
	store := s.util.Store()
	if err := store.Reload(raw); err != nil {
		return nil, apperr.Wrap(apperr.KindUnprocessable, "metadata document is malformed", err).WithOp("phoneapi.ReloadMetadata")
	}
	if err := store.Warm(ctx); err != nil {
		return nil, apperr.Wrap(apperr.KindUnprocessable, "metadata document is incomplete", err).WithOp("phoneapi.ReloadMetadata")
	}
	if err := s.cache.Flush(ctx); err != nil {
		s.log.Warn("lookup cache flush failed after metadata reload", "error", err)
	}
	s.log.MetadataLoaded(s.sourceName, store.RegionCount())
	return &transport.ReloadResponse{Regions: store.RegionCount(), Source: s.sourceName}, nil
}

// Ping reports readiness: the metadata store must serve the default region
// and the cache backend, when configured, must respond.
func (s *Service) Ping(ctx context.Context) error {
	if s.util.Store().MetadataForRegion(s.defaultRegion) == nil {
		return fmt.Errorf("metadata store cannot serve default region %s", s.defaultRegion)
	}
	return s.cache.Ping(ctx)
}

func (s *Service) regionOrDefault(region string) string {
	if region == "" {
		return s.defaultRegion
	}
	return region
}

// mapParseError wraps core parse errors in apperr kinds: malformed input is
// unprocessable, an unresolvable country code is a bad request.
func (s *Service) mapParseError(err error) error {
	code, ok := phonenumbers.CodeOf(err)
	if !ok {
		return apperr.Wrap(apperr.KindInternal, "parse failed", err)
	}
	if code == phonenumbers.ErrInvalidCountryCode {
		return apperr.Wrap(apperr.KindBadRequest, err.Error(), err)
	}
	return apperr.Wrap(apperr.KindUnprocessable, err.Error(), err)
}

func toNumberResponse(number *phonenumbers.PhoneNumber, keepRawInput bool) transport.PhoneNumberResponse {
	resp := transport.PhoneNumberResponse{
		CountryCode:          number.CountryCode,
		NationalNumber:       number.NationalNumber,
		Extension:            number.Extension,
		ItalianLeadingZero:   number.ItalianLeadingZero,
		NumberOfLeadingZeros: number.NumberOfLeadingZeros,
	}
	if keepRawInput {
		resp.RawInput = number.RawInput
		resp.CountryCodeSource = sourceName(number.CountryCodeSource)
		resp.PreferredDomesticCarrierCode = number.PreferredDomesticCarrierCode
	}
	return resp
}

func typeName(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.FixedLine:
		return "FIXED_LINE"
	case phonenumbers.Mobile:
		return "MOBILE"
	case phonenumbers.FixedLineOrMobile:
		return "FIXED_LINE_OR_MOBILE"
	case phonenumbers.TollFree:
		return "TOLL_FREE"
	case phonenumbers.PremiumRate:
		return "PREMIUM_RATE"
	case phonenumbers.SharedCost:
		return "SHARED_COST"
	case phonenumbers.VoIP:
		return "VOIP"
	case phonenumbers.PersonalNumber:
		return "PERSONAL_NUMBER"
	case phonenumbers.Pager:
		return "PAGER"
	case phonenumbers.UAN:
		return "UAN"
	case phonenumbers.Voicemail:
		return "VOICEMAIL"
	default:
		return "UNKNOWN"
	}
}

func sourceName(s phonenumbers.CountryCodeSource) string {
	switch s {
	case phonenumbers.FromNumberWithIDD:
		return "FROM_NUMBER_WITH_IDD"
	case phonenumbers.FromNumberWithoutPlusSign:
		return "FROM_NUMBER_WITHOUT_PLUS_SIGN"
	case phonenumbers.FromDefaultCountry:
		return "FROM_DEFAULT_COUNTRY"
	default:
		return "FROM_NUMBER_WITH_PLUS_SIGN"
	}
}

func formatFromName(name string) (phonenumbers.PhoneNumberFormat, error) {
	switch name {
	case "E164":
		return phonenumbers.E164, nil
	case "INTERNATIONAL":
		return phonenumbers.International, nil
	case "NATIONAL":
		return phonenumbers.National, nil
	case "RFC3966":
		return phonenumbers.RFC3966, nil
	}
	return 0, fmt.Errorf("unknown format %q", name)
}
