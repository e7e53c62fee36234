// Package metadata holds the per-region dialling rules that drive parsing,
// validation and formatting, together with the loader that builds them from
// a metadata document and the store that caches them.
package metadata

import "regexp"

// PhoneNumberDesc describes one class of numbers within a region (fixed
// line, mobile, toll free, ...). A pattern of "NA" means the class does not
// exist in the region and never matches.
type PhoneNumberDesc struct {
	NationalNumberPattern string
	PossibleNumberPattern string
	ExampleNumber         string

	nationalRE       *regexp.Regexp
	possibleRE       *regexp.Regexp
	possiblePrefixRE *regexp.Regexp
}

// HasNationalNumberPattern reports whether a usable national pattern exists.
func (d *PhoneNumberDesc) HasNationalNumberPattern() bool {
	return d != nil && d.nationalRE != nil
}

// MatchesNational reports whether nsn matches the national pattern entirely.
func (d *PhoneNumberDesc) MatchesNational(nsn string) bool {
	return d != nil && d.nationalRE != nil && d.nationalRE.MatchString(nsn)
}

// MatchesPossible reports whether nsn matches the possible pattern entirely.
func (d *PhoneNumberDesc) MatchesPossible(nsn string) bool {
	return d != nil && d.possibleRE != nil && d.possibleRE.MatchString(nsn)
}

// MatchesPossiblePrefix reports whether a prefix of nsn matches the possible
// pattern, which distinguishes a too-long number from a too-short one.
func (d *PhoneNumberDesc) MatchesPossiblePrefix(nsn string) bool {
	return d != nil && d.possiblePrefixRE != nil && d.possiblePrefixRE.MatchString(nsn)
}

// NumberFormat is one formatting rule of a region: a pattern over the
// national significant number and the template that renders it.
type NumberFormat struct {
	// Pattern matches the national significant number entirely.
	Pattern string
	// Format is the replacement template, referencing groups as $1..$n.
	Format string
	// LeadingDigitsPattern narrows which numbers the format applies to; the
	// last entry is the most discriminating and is the one consulted.
	LeadingDigitsPattern []string
	// NationalPrefixFormattingRule is substituted for the first group slot
	// when formatting nationally. $NP and $FG have already been resolved by
	// the loader.
	NationalPrefixFormattingRule string
	// NationalPrefixOptionalWhenFormatting marks the rule as optional.
	NationalPrefixOptionalWhenFormatting bool
	// DomesticCarrierCodeFormattingRule still carries the $CC placeholder,
	// resolved at formatting time.
	DomesticCarrierCodeFormattingRule string

	patternRE *regexp.Regexp
	leadingRE *regexp.Regexp
}

// PatternRE returns the compiled full-match pattern, nil when malformed.
func (f *NumberFormat) PatternRE() *regexp.Regexp {
	return f.patternRE
}

// LeadingDigitsMatch reports whether the format applies to nsn: true when no
// leading-digits pattern was declared, or when the last declared pattern
// matches a prefix of nsn.
func (f *NumberFormat) LeadingDigitsMatch(nsn string) bool {
	if len(f.LeadingDigitsPattern) == 0 {
		return true
	}
	return f.leadingRE != nil && f.leadingRE.MatchString(nsn)
}

// PhoneMetadata is the full set of dialling rules for one region, or for a
// non-geographical entity (ID "001").
type PhoneMetadata struct {
	ID                           string
	CountryCode                  int
	InternationalPrefix          string
	PreferredInternationalPrefix string
	NationalPrefix               string
	NationalPrefixForParsing     string
	NationalPrefixTransformRule  string
	PreferredExtnPrefix          string
	LeadingDigits                string

	MainCountryForCode            bool
	LeadingZeroPossible           bool
	MobileNumberPortableRegion    bool
	SameMobileAndFixedLinePattern bool

	GeneralDesc             *PhoneNumberDesc
	FixedLine               *PhoneNumberDesc
	Mobile                  *PhoneNumberDesc
	TollFree                *PhoneNumberDesc
	PremiumRate             *PhoneNumberDesc
	SharedCost              *PhoneNumberDesc
	VoIP                    *PhoneNumberDesc
	PersonalNumber          *PhoneNumberDesc
	Pager                   *PhoneNumberDesc
	UAN                     *PhoneNumberDesc
	Voicemail               *PhoneNumberDesc
	NoInternationalDialling *PhoneNumberDesc
	Emergency               *PhoneNumberDesc
	StandardRate            *PhoneNumberDesc
	ShortCode               *PhoneNumberDesc
	CarrierSpecific         *PhoneNumberDesc

	NumberFormats     []*NumberFormat
	IntlNumberFormats []*NumberFormat

	iddRE                      *regexp.Regexp
	nationalPrefixForParsingRE *regexp.Regexp
	leadingDigitsRE            *regexp.Regexp
}

// InternationalPrefixPattern returns the IDD recogniser anchored at the
// start of the number, nil when the region declares none.
func (m *PhoneMetadata) InternationalPrefixPattern() *regexp.Regexp {
	return m.iddRE
}

// NationalPrefixForParsingPattern returns the anchored national-prefix
// matcher used during parsing, nil when the region declares none.
func (m *PhoneMetadata) NationalPrefixForParsingPattern() *regexp.Regexp {
	return m.nationalPrefixForParsingRE
}

// LeadingDigitsPattern returns the anchored leading-digits matcher that
// disambiguates regions sharing a calling code, nil when not declared.
func (m *PhoneMetadata) LeadingDigitsPattern() *regexp.Regexp {
	return m.leadingDigitsRE
}
