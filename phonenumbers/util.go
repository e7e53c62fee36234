package phonenumbers

import (
	"sync"

	"phonekit/phonenumbers/metadata"
)

// Util binds the parsing, validation and formatting operations to a
// metadata store. A Util is safe for concurrent use.
type Util struct {
	store *metadata.Store
}

// New creates a Util over the given metadata store. Services that load
// their metadata from an external source construct their own store; library
// users normally go through the package-level functions instead.
func New(store *metadata.Store) *Util {
	return &Util{store: store}
}

// Store exposes the backing metadata store.
func (u *Util) Store() *metadata.Store {
	return u.store
}

var (
	defaultUtil     *Util
	defaultUtilOnce sync.Once
)

// Default returns the shared Util backed by the embedded metadata document.
func Default() *Util {
	defaultUtilOnce.Do(func() {
		defaultUtil = New(metadata.NewEmbeddedStore())
	})
	return defaultUtil
}

// Package-level convenience wrappers over Default().

// Parse interprets a free-form number against the default region.
func Parse(numberToParse, defaultRegion string) (*PhoneNumber, error) {
	return Default().Parse(numberToParse, defaultRegion)
}

// ParseAndKeepRawInput parses while preserving the original input, country
// code provenance and carrier code.
func ParseAndKeepRawInput(numberToParse, defaultRegion string) (*PhoneNumber, error) {
	return Default().ParseAndKeepRawInput(numberToParse, defaultRegion)
}

// Format renders a number in the requested presentation.
func Format(number *PhoneNumber, format PhoneNumberFormat) string {
	return Default().Format(number, format)
}

// FormatOutOfCountryCallingNumber renders a number as dialled from a region.
func FormatOutOfCountryCallingNumber(number *PhoneNumber, regionCallingFrom string) string {
	return Default().FormatOutOfCountryCallingNumber(number, regionCallingFrom)
}

// FormatNationalNumberWithCarrierCode renders the national form with a
// domestic carrier code.
func FormatNationalNumberWithCarrierCode(number *PhoneNumber, carrierCode string) string {
	return Default().FormatNationalNumberWithCarrierCode(number, carrierCode)
}

// IsValidNumber reports whether the number is valid for its region.
func IsValidNumber(number *PhoneNumber) bool {
	return Default().IsValidNumber(number)
}

// IsValidNumberForRegion reports validity within a specific region.
func IsValidNumberForRegion(number *PhoneNumber, regionCode string) bool {
	return Default().IsValidNumberForRegion(number, regionCode)
}

// GetNumberType classifies the number.
func GetNumberType(number *PhoneNumber) PhoneNumberType {
	return Default().GetNumberType(number)
}

// GetRegionCodeForNumber resolves the region a number belongs to.
func GetRegionCodeForNumber(number *PhoneNumber) string {
	return Default().GetRegionCodeForNumber(number)
}

// GetRegionCodeForCountryCode returns the main region for a calling code.
func GetRegionCodeForCountryCode(countryCode int) string {
	return Default().GetRegionCodeForCountryCode(countryCode)
}

// GetCountryCodeForRegion returns the calling code of a region.
func GetCountryCodeForRegion(regionCode string) int {
	return Default().GetCountryCodeForRegion(regionCode)
}

// GetNddPrefixForRegion returns a region's national dialling prefix.
func GetNddPrefixForRegion(regionCode string, stripNonDigits bool) string {
	return Default().GetNddPrefixForRegion(regionCode, stripNonDigits)
}

// IsNANPACountry reports NANPA membership of a region.
func IsNANPACountry(regionCode string) bool {
	return Default().IsNANPACountry(regionCode)
}

// IsLeadingZeroPossible reports whether a calling code admits numbers with
// a meaningful leading zero.
func IsLeadingZeroPossible(countryCode int) bool {
	return Default().IsLeadingZeroPossible(countryCode)
}
