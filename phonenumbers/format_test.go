package phonenumbers

import "testing"

func TestFormat_US(t *testing.T) {
	number := &PhoneNumber{CountryCode: 1, NationalNumber: 6502530000}
	cases := []struct {
		format PhoneNumberFormat
		want   string
	}{
		{National, "(650) 253-0000"},
		{International, "+1 650-253-0000"},
		{E164, "+16502530000"},
		{RFC3966, "tel:+1-650-253-0000"},
	}
	for _, tc := range cases {
		if got := Format(number, tc.format); got != tc.want {
			t.Errorf("Format(%v) = %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestFormat_NationalPrefixRules(t *testing.T) {
	cases := []struct {
		name   string
		number *PhoneNumber
		format PhoneNumberFormat
		want   string
	}{
		{"GB fixed national", &PhoneNumber{CountryCode: 44, NationalNumber: 2070313000}, National, "020 7031 3000"},
		{"GB mobile national", &PhoneNumber{CountryCode: 44, NationalNumber: 7912345678}, National, "07912 345678"},
		{"GB mobile international", &PhoneNumber{CountryCode: 44, NationalNumber: 7912345678}, International, "+44 7912 345678"},
		{"DE fixed national", &PhoneNumber{CountryCode: 49, NationalNumber: 30123456}, National, "030 123456"},
		{"DE mobile national", &PhoneNumber{CountryCode: 49, NationalNumber: 15123456789}, National, "0151 23456789"},
		{"AU fixed national", &PhoneNumber{CountryCode: 61, NationalNumber: 236618300}, National, "(02) 3661 8300"},
		{"AU mobile national", &PhoneNumber{CountryCode: 61, NationalNumber: 412345678}, National, "0412 345 678"},
		{"IT keeps leading zero", &PhoneNumber{CountryCode: 39, NationalNumber: 236618300, ItalianLeadingZero: true}, National, "02 3661 8300"},
		{"IT E164 keeps leading zero", &PhoneNumber{CountryCode: 39, NationalNumber: 236618300, ItalianLeadingZero: true}, E164, "+390236618300"},
		{"BR national parentheses", &PhoneNumber{CountryCode: 55, NationalNumber: 1123456789}, National, "(11) 2345-6789"},
		{"AR mobile national", &PhoneNumber{CountryCode: 54, NationalNumber: 93435551212}, National, "0343 15-555-1212"},
		{"AR mobile international", &PhoneNumber{CountryCode: 54, NationalNumber: 93435551212}, International, "+54 9 343 555-1212"},
		{"SG no national prefix", &PhoneNumber{CountryCode: 65, NationalNumber: 61234567}, National, "6123 4567"},
		{"intl toll free", &PhoneNumber{CountryCode: 800, NationalNumber: 12345678}, International, "+800 1234 5678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.number, tc.format); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormat_Extension(t *testing.T) {
	number := &PhoneNumber{CountryCode: 1, NationalNumber: 6502530000, Extension: "1234"}
	if got := Format(number, National); got != "(650) 253-0000 ext. 1234" {
		t.Fatalf("national with extension: got %q", got)
	}
	if got := Format(number, RFC3966); got != "tel:+1-650-253-0000;ext=1234" {
		t.Fatalf("rfc3966 with extension: got %q", got)
	}

	// BR declares its own extension prefix.
	brazilian := &PhoneNumber{CountryCode: 55, NationalNumber: 1123456789, Extension: "12"}
	if got := Format(brazilian, National); got != "(11) 2345-6789 ramal 12" {
		t.Fatalf("preferred extension prefix: got %q", got)
	}
}

func TestFormat_RawInputEchoedWithoutCountryCode(t *testing.T) {
	number := &PhoneNumber{RawInput: "650 253 0000"}
	if got := Format(number, National); got != "650 253 0000" {
		t.Fatalf("got %q", got)
	}
}

func TestFormat_UnknownCountryCodeReturnsBareNSN(t *testing.T) {
	number := &PhoneNumber{CountryCode: 999, NationalNumber: 123456789}
	if got := Format(number, International); got != "123456789" {
		t.Fatalf("got %q", got)
	}
}

func TestFormat_NoMatchingPatternLeavesNSN(t *testing.T) {
	// Twelve digits match no US format pattern; the NSN passes through.
	number := &PhoneNumber{CountryCode: 1, NationalNumber: 650253000012}
	if got := Format(number, National); got != "650253000012" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatNationalNumberWithCarrierCode(t *testing.T) {
	number := &PhoneNumber{CountryCode: 55, NationalNumber: 1123456789}
	if got := FormatNationalNumberWithCarrierCode(number, "41"); got != "0 41 (11) 2345-6789" {
		t.Fatalf("got %q", got)
	}
	// Without a carrier code the national prefix rule applies instead.
	if got := FormatNationalNumberWithCarrierCode(number, ""); got != "(11) 2345-6789" {
		t.Fatalf("got %q", got)
	}
	// Regions without a carrier rule ignore the carrier code.
	usNumber := &PhoneNumber{CountryCode: 1, NationalNumber: 6502530000}
	if got := FormatNationalNumberWithCarrierCode(usNumber, "15"); got != "(650) 253-0000" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatOutOfCountryCallingNumber(t *testing.T) {
	usNumber := &PhoneNumber{CountryCode: 1, NationalNumber: 6502530000}
	cases := []struct {
		name string
		from string
		want string
	}{
		{"from DE uses 00", "DE", "00 1 650-253-0000"},
		{"from AU uses preferred prefix", "AU", "0011 1 650-253-0000"},
		{"NANPA to NANPA dials 1", "US", "1 (650) 253-0000"},
		{"NANPA to NANPA from BS", "BS", "1 (650) 253-0000"},
		{"no prefix known falls back", "SG", "+1 650-253-0000"},
		{"invalid region formats international", "", "+1 650-253-0000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatOutOfCountryCallingNumber(usNumber, tc.from); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}

	// Same country collapses to the national form.
	deNumber := &PhoneNumber{CountryCode: 49, NationalNumber: 30123456}
	if got := FormatOutOfCountryCallingNumber(deNumber, "DE"); got != "030 123456" {
		t.Fatalf("got %q", got)
	}
}

func TestFormat_ScenarioRoundTrips(t *testing.T) {
	parsed := mustParse(t, "1-650-253-0000", "US")
	if got := Format(parsed, National); got != "(650) 253-0000" {
		t.Fatalf("got %q", got)
	}
	tollFree := mustParse(t, "011 800 1234 5678", "US")
	if got := Format(tollFree, E164); got != "+80012345678" {
		t.Fatalf("got %q", got)
	}
}
