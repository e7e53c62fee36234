package phonenumbers

import (
	"strconv"
	"strings"

	"phonekit/phonenumbers/metadata"
)

// PhoneNumberFormat selects one of the four canonical presentations.
type PhoneNumberFormat int

const (
	// E164 is "+<cc><nsn>".
	E164 PhoneNumberFormat = iota
	// International is "+<cc> <formatted nsn>".
	International
	// National is the in-country dialling form.
	National
	// RFC3966 is the "tel:" URI form.
	RFC3966
)

// Format renders the number in the requested presentation. Parse remnants
// (no country code) echo their raw input; numbers with an unknown calling
// code come back as the bare national significant number.
func (u *Util) Format(number *PhoneNumber, format PhoneNumberFormat) string {
	if number.CountryCode == 0 && number.RawInput != "" {
		return number.RawInput
	}

	countryCode := number.CountryCode
	nsn := GetNationalSignificantNumber(number)
	if !u.hasValidCountryCallingCode(countryCode) {
		return nsn
	}

	regionCode := u.GetRegionCodeForCountryCode(countryCode)
	md := u.metadataForRegionOrCallingCode(countryCode, regionCode)
	extension := maybeGetFormattedExtension(number, md, format)
	if format == E164 {
		// E.164 carries no grouping, so the pattern machinery is skipped.
		return assembleNumber(countryCode, E164, nsn, extension)
	}
	return assembleNumber(countryCode, format, u.formatNSN(nsn, md, format, ""), extension)
}

// FormatNationalNumberWithCarrierCode renders the national form with a
// domestic carrier code inserted where the region's format calls for one.
func (u *Util) FormatNationalNumberWithCarrierCode(number *PhoneNumber, carrierCode string) string {
	countryCode := number.CountryCode
	nsn := GetNationalSignificantNumber(number)
	if !u.hasValidCountryCallingCode(countryCode) {
		return nsn
	}
	regionCode := u.GetRegionCodeForCountryCode(countryCode)
	md := u.metadataForRegionOrCallingCode(countryCode, regionCode)
	extension := maybeGetFormattedExtension(number, md, National)
	return u.formatNSN(nsn, md, National, carrierCode) + extension
}

// FormatOutOfCountryCallingNumber renders the number as dialled from the
// given region: the caller's international prefix, then country code and
// the internationally formatted national number.
func (u *Util) FormatOutOfCountryCallingNumber(number *PhoneNumber, regionCallingFrom string) string {
	if !isValidRegionCode(regionCallingFrom) {
		return u.Format(number, International)
	}
	countryCode := number.CountryCode
	nsn := GetNationalSignificantNumber(number)
	if !u.hasValidCountryCallingCode(countryCode) {
		return nsn
	}

	if countryCode == NANPACountryCode {
		if u.IsNANPACountry(regionCallingFrom) {
			// Within NANPA the country code is dialled with the number.
			return strconv.Itoa(countryCode) + " " + u.Format(number, National)
		}
	} else if countryCode == u.GetCountryCodeForRegion(regionCallingFrom) {
		return u.Format(number, National)
	}

	var internationalPrefix string
	if fromMetadata := u.store.MetadataForRegion(regionCallingFrom); fromMetadata != nil {
		// Only a prefix that is itself plain digits can be dialled verbatim;
		// otherwise the region must name a preferred one.
		if uniqueInternationalPrefixRegexp.MatchString(fromMetadata.InternationalPrefix) {
			internationalPrefix = fromMetadata.InternationalPrefix
		} else {
			internationalPrefix = fromMetadata.PreferredInternationalPrefix
		}
	}

	regionCode := u.GetRegionCodeForCountryCode(countryCode)
	md := u.metadataForRegionOrCallingCode(countryCode, regionCode)
	formattedNSN := u.formatNSN(nsn, md, International, "")
	extension := maybeGetFormattedExtension(number, md, International)
	if internationalPrefix != "" {
		return internationalPrefix + " " + strconv.Itoa(countryCode) + " " + formattedNSN + extension
	}
	return assembleNumber(countryCode, International, formattedNSN, extension)
}

// formatNSN picks the first applicable format rule and applies it. The
// international list is consulted for non-national presentations when the
// region declares explicitly different international formats; otherwise the
// national list serves every presentation.
func (u *Util) formatNSN(nsn string, md *metadata.PhoneMetadata, format PhoneNumberFormat, carrierCode string) string {
	if md == nil {
		return nsn
	}
	availableFormats := md.NumberFormats
	if format != National && len(md.IntlNumberFormats) > 0 {
		availableFormats = md.IntlNumberFormats
	}

	formatted := nsn
	for _, numberFormat := range availableFormats {
		if !numberFormat.LeadingDigitsMatch(nsn) {
			continue
		}
		pattern := numberFormat.PatternRE()
		if pattern == nil || !pattern.MatchString(nsn) {
			continue
		}
		rule := numberFormat.Format
		switch {
		case format == National && carrierCode != "" && numberFormat.DomesticCarrierCodeFormattingRule != "":
			carrierRule := strings.ReplaceAll(numberFormat.DomesticCarrierCodeFormattingRule, "$CC", carrierCode)
			rule = replaceFirstGroup(rule, carrierRule)
		case format == National && numberFormat.NationalPrefixFormattingRule != "":
			rule = replaceFirstGroup(rule, numberFormat.NationalPrefixFormattingRule)
		}
		formatted = pattern.ReplaceAllString(nsn, expandGroupRefs(rule))
		break
	}

	if format == RFC3966 {
		formatted = leadingSeparatorRegexp.ReplaceAllString(formatted, "")
		formatted = separatorRegexp.ReplaceAllString(formatted, "-")
	}
	return formatted
}

// replaceFirstGroup substitutes the rule for the first group slot of the
// format template, leaving the remaining slots untouched.
func replaceFirstGroup(format, rule string) string {
	loc := firstGroupRegexp.FindStringIndex(format)
	if loc == nil {
		return format
	}
	return format[:loc[0]] + rule + format[loc[1]:]
}

// maybeGetFormattedExtension renders the extension in the idiom of the
// presentation: RFC 3966 uses its own parameter, everything else uses the
// region's preferred prefix or the default " ext. ".
func maybeGetFormattedExtension(number *PhoneNumber, md *metadata.PhoneMetadata, format PhoneNumberFormat) string {
	if number.Extension == "" {
		return ""
	}
	if format == RFC3966 {
		return rfc3966ExtnPrefix + number.Extension
	}
	if md != nil && md.PreferredExtnPrefix != "" {
		return md.PreferredExtnPrefix + number.Extension
	}
	return defaultExtnPrefix + number.Extension
}

func assembleNumber(countryCode int, format PhoneNumberFormat, nsn, extension string) string {
	switch format {
	case E164:
		return "+" + strconv.Itoa(countryCode) + nsn + extension
	case International:
		return "+" + strconv.Itoa(countryCode) + " " + nsn + extension
	case RFC3966:
		return "tel:+" + strconv.Itoa(countryCode) + "-" + nsn + extension
	default:
		return nsn + extension
	}
}
