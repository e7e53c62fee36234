package phonenumbers

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"phonekit/phonenumbers/metadata"
)

// Parse interprets a free-form number against the default region and
// returns its structured form. The default region is only consulted when
// the number carries no international marker.
func (u *Util) Parse(numberToParse, defaultRegion string) (*PhoneNumber, error) {
	return u.parseHelper(numberToParse, defaultRegion, false)
}

// ParseAndKeepRawInput behaves like Parse but additionally records the
// original input, the provenance of the country code and any domestic
// carrier code that was stripped.
func (u *Util) ParseAndKeepRawInput(numberToParse, defaultRegion string) (*PhoneNumber, error) {
	return u.parseHelper(numberToParse, defaultRegion, true)
}

func (u *Util) parseHelper(numberToParse, defaultRegion string, keepRawInput bool) (*PhoneNumber, error) {
	if numberToParse == "" {
		return nil, newParseError(ErrNotANumber, "the phone number supplied was empty")
	}
	if utf8.RuneCountInString(numberToParse) > MaxInputStringLength {
		return nil, newParseError(ErrTooLong, "the string supplied was too long to parse")
	}

	nationalNumber := buildNationalNumberForParsing(numberToParse)
	if !IsViablePhoneNumber(nationalNumber) {
		return nil, newParseError(ErrNotANumber, "the string supplied did not seem to be a phone number")
	}
	if !checkRegionForParsing(nationalNumber, defaultRegion) {
		return nil, newParseError(ErrInvalidCountryCode, "missing or invalid default region")
	}

	number := &PhoneNumber{}
	if keepRawInput {
		number.RawInput = numberToParse
	}

	extension, nationalNumber := maybeStripExtension(nationalNumber)
	if extension != "" {
		number.Extension = extension
	}

	regionMetadata := u.store.MetadataForRegion(defaultRegion)

	countryCode, normalizedNationalNumber, err := u.maybeExtractCountryCode(
		nationalNumber, regionMetadata, keepRawInput, number)
	if err != nil {
		// One recovery path: an unrecognised country code on a number that
		// still starts with plus characters gets a single retry with those
		// characters stripped.
		if !IsCode(err, ErrInvalidCountryCode) {
			return nil, err
		}
		loc := leadingPlusCharsRegexp.FindStringIndex(nationalNumber)
		if loc == nil {
			return nil, err
		}
		countryCode, normalizedNationalNumber, err = u.maybeExtractCountryCode(
			nationalNumber[loc[1]:], regionMetadata, keepRawInput, number)
		if err != nil {
			return nil, err
		}
		if countryCode == 0 {
			return nil, newParseError(ErrInvalidCountryCode, "could not interpret numbers after plus-sign")
		}
	}

	if countryCode != 0 {
		numberRegion := u.GetRegionCodeForCountryCode(countryCode)
		if numberRegion != defaultRegion {
			regionMetadata = u.metadataForRegionOrCallingCode(countryCode, numberRegion)
		}
	} else if regionMetadata != nil {
		countryCode = regionMetadata.CountryCode
		number.CountryCode = countryCode
	}

	if regionMetadata != nil {
		stripped, carrierCode, _ := u.maybeStripNationalPrefixAndCarrierCode(
			normalizedNationalNumber, regionMetadata)
		normalizedNationalNumber = stripped
		if keepRawInput {
			number.PreferredDomesticCarrierCode = carrierCode
		}
	}

	switch length := len(normalizedNationalNumber); {
	case length < MinLengthForNSN:
		return nil, newParseError(ErrTooShortNSN, "the string supplied is too short to be a phone number")
	case length > MaxLengthForNSN:
		return nil, newParseError(ErrTooLong, "the string supplied is too long to be a phone number")
	}

	setItalianLeadingZeros(normalizedNationalNumber, number)
	nsn, err := strconv.ParseUint(normalizedNationalNumber, 10, 64)
	if err != nil {
		return nil, newParseError(ErrNotANumber, "the national number did not reduce to digits")
	}
	number.NationalNumber = nsn
	return number, nil
}

// buildNationalNumberForParsing unwraps RFC 3966 syntax when present,
// otherwise trims the input down to its number-like portion, and drops any
// ISDN subaddress.
func buildNationalNumberForParsing(numberToParse string) string {
	var sb strings.Builder
	if contextIdx := strings.Index(numberToParse, rfc3966PhoneContext); contextIdx >= 0 {
		contextStart := contextIdx + len(rfc3966PhoneContext)
		// Only a global phone-context (one starting with "+") contributes to
		// the number; a domain context is descriptive and ignored.
		if contextStart < len(numberToParse) && numberToParse[contextStart] == '+' {
			if contextEnd := strings.Index(numberToParse[contextStart:], ";"); contextEnd > 0 {
				sb.WriteString(numberToParse[contextStart : contextStart+contextEnd])
			} else {
				sb.WriteString(numberToParse[contextStart:])
			}
		}
		numberStart := 0
		if prefixIdx := strings.Index(numberToParse, rfc3966Prefix); prefixIdx >= 0 {
			numberStart = prefixIdx + len(rfc3966Prefix)
		}
		sb.WriteString(numberToParse[numberStart:contextIdx])
	} else {
		sb.WriteString(extractPossibleNumber(numberToParse))
	}

	result := sb.String()
	if isdnIdx := strings.Index(result, rfc3966IsdnSubaddress); isdnIdx > 0 {
		result = result[:isdnIdx]
	}
	return result
}

// maybeStripExtension detaches a trailing extension. The extension is only
// honoured when what precedes it still looks like a phone number.
func maybeStripExtension(number string) (extension, stripped string) {
	loc := extnRegexp.FindStringSubmatchIndex(number)
	if loc == nil || !IsViablePhoneNumber(number[:loc[0]]) {
		return "", number
	}
	// The first group that captured holds the digits, whichever alternative
	// of the pattern matched.
	for i := 1; 2*i+1 < len(loc); i++ {
		if loc[2*i] >= 0 && loc[2*i] < loc[2*i+1] {
			return number[loc[2*i]:loc[2*i+1]], number[:loc[0]]
		}
	}
	return "", number
}

// checkRegionForParsing accepts any non-empty default region; without one
// the number must carry its own plus sign.
func checkRegionForParsing(numberToParse, defaultRegion string) bool {
	if isValidRegionCode(defaultRegion) {
		return true
	}
	return numberToParse != "" && leadingPlusCharsRegexp.MatchString(numberToParse)
}

func isValidRegionCode(regionCode string) bool {
	return regionCode != ""
}

// maybeExtractCountryCode strips any international marker and extracts the
// country calling code, returning the code and the remaining national
// number. A return of 0 with no error means the default region's code
// applies.
func (u *Util) maybeExtractCountryCode(number string, defaultRegionMetadata *metadata.PhoneMetadata,
	keepRawInput bool, phoneNumber *PhoneNumber) (int, string, error) {
	if number == "" {
		return 0, "", nil
	}

	var iddPattern *regexp.Regexp
	if defaultRegionMetadata != nil {
		iddPattern = defaultRegionMetadata.InternationalPrefixPattern()
	}
	fullNumber, countryCodeSource := maybeStripInternationalPrefixAndNormalize(number, iddPattern)
	if keepRawInput {
		phoneNumber.CountryCodeSource = countryCodeSource
	}

	if countryCodeSource != FromDefaultCountry {
		if utf8.RuneCountInString(fullNumber) <= MinLengthForNSN {
			return 0, "", newParseError(ErrTooShortAfterIDD,
				"phone number had an IDD, but after this was not long enough to be a viable phone number")
		}
		if countryCode, rest := u.extractCountryCode(fullNumber); countryCode != 0 {
			phoneNumber.CountryCode = countryCode
			return countryCode, rest, nil
		}
		return 0, "", newParseError(ErrInvalidCountryCode,
			"country calling code supplied was not recognised")
	}

	if defaultRegionMetadata != nil {
		// The number may still carry the default region's country code
		// without any marker. Strip it tentatively and keep the strip only
		// when it turns an implausible number into a plausible one.
		countryCodeString := strconv.Itoa(defaultRegionMetadata.CountryCode)
		if strings.HasPrefix(fullNumber, countryCodeString) {
			potentialNationalNumber := fullNumber[len(countryCodeString):]
			generalDesc := defaultRegionMetadata.GeneralDesc
			potentialNationalNumber, _, _ = u.maybeStripNationalPrefixAndCarrierCode(
				potentialNationalNumber, defaultRegionMetadata)
			if (!generalDesc.MatchesNational(fullNumber) &&
				generalDesc.MatchesNational(potentialNationalNumber)) ||
				isLongerThanPossible(generalDesc, fullNumber) {
				if keepRawInput {
					phoneNumber.CountryCodeSource = FromNumberWithoutPlusSign
				}
				phoneNumber.CountryCode = defaultRegionMetadata.CountryCode
				return defaultRegionMetadata.CountryCode, potentialNationalNumber, nil
			}
		}
	}

	phoneNumber.CountryCode = 0
	return 0, fullNumber, nil
}

// isLongerThanPossible reports that the number overshoots the possible
// pattern: a prefix of it matches but the whole of it does not.
func isLongerThanPossible(desc *metadata.PhoneNumberDesc, number string) bool {
	return !desc.MatchesPossible(number) && desc.MatchesPossiblePrefix(number)
}

// extractCountryCode tries the leading one to three digits against the
// country-code table; the first hit wins.
func (u *Util) extractCountryCode(fullNumber string) (int, string) {
	if fullNumber == "" || fullNumber[0] == '0' {
		// Country codes never begin with a zero.
		return 0, ""
	}
	for length := 1; length <= MaxLengthCountryCode && length <= len(fullNumber); length++ {
		potentialCountryCode, err := strconv.Atoi(fullNumber[:length])
		if err != nil {
			return 0, ""
		}
		if len(u.store.RegionsForCountryCode(potentialCountryCode)) > 0 {
			return potentialCountryCode, fullNumber[length:]
		}
	}
	return 0, ""
}

// maybeStripInternationalPrefixAndNormalize removes a leading plus sequence
// or the region's IDD and normalizes what remains, reporting which marker
// was found.
func maybeStripInternationalPrefixAndNormalize(number string, iddPattern *regexp.Regexp) (string, CountryCodeSource) {
	if number == "" {
		return number, FromDefaultCountry
	}
	if loc := leadingPlusCharsRegexp.FindStringIndex(number); loc != nil {
		return Normalize(number[loc[1]:]), FromNumberWithPlusSign
	}
	normalized := Normalize(number)
	if stripped, ok := parsePrefixAsIdd(iddPattern, normalized); ok {
		return stripped, FromNumberWithIDD
	}
	return normalized, FromDefaultCountry
}

// parsePrefixAsIdd strips a matching IDD, unless the first digit after it is
// a zero — a zero there means the digits were a national prefix lookalike,
// not an international call.
func parsePrefixAsIdd(iddPattern *regexp.Regexp, number string) (string, bool) {
	if iddPattern == nil {
		return number, false
	}
	loc := iddPattern.FindStringIndex(number)
	if loc == nil {
		return number, false
	}
	rest := number[loc[1]:]
	if m := capturingDigitRegexp.FindStringSubmatch(rest); m != nil {
		if NormalizeDigitsOnly(m[1]) == "0" {
			return number, false
		}
	}
	return rest, true
}

// maybeStripNationalPrefixAndCarrierCode removes the region's national
// prefix (applying the transform rule when one exists), refusing the strip
// when it would turn a valid number into an invalid one. The returned
// carrier code is the first captured group when the prefix rule carries one.
func (u *Util) maybeStripNationalPrefixAndCarrierCode(number string, md *metadata.PhoneMetadata) (string, string, bool) {
	if number == "" || md == nil {
		return number, "", false
	}
	prefixPattern := md.NationalPrefixForParsingPattern()
	if prefixPattern == nil {
		return number, "", false
	}
	match := prefixPattern.FindStringSubmatchIndex(number)
	if match == nil {
		return number, "", false
	}

	generalDesc := md.GeneralDesc
	isViableOriginalNumber := generalDesc.MatchesNational(number)
	numOfGroups := len(match)/2 - 1
	lastGroupAbsent := numOfGroups == 0 ||
		match[2*numOfGroups] < 0 || match[2*numOfGroups] == match[2*numOfGroups+1]

	if md.NationalPrefixTransformRule == "" || lastGroupAbsent {
		stripped := number[match[1]:]
		if isViableOriginalNumber && !generalDesc.MatchesNational(stripped) {
			return number, "", false
		}
		carrierCode := ""
		if numOfGroups > 0 && match[2*numOfGroups] >= 0 && match[2] >= 0 {
			carrierCode = number[match[2]:match[3]]
		}
		return stripped, carrierCode, true
	}

	template := expandGroupRefs(md.NationalPrefixTransformRule)
	transformed := string(prefixPattern.ExpandString(nil, template, number, match)) + number[match[1]:]
	if isViableOriginalNumber && !generalDesc.MatchesNational(transformed) {
		return number, "", false
	}
	carrierCode := ""
	if numOfGroups > 1 && match[2] >= 0 {
		carrierCode = number[match[2]:match[3]]
	}
	return transformed, carrierCode, true
}

// setItalianLeadingZeros records the leading zeros of the textual national
// number so the integer form can be reversed faithfully. Counting stops one
// short of the length so an all-zero number keeps a digit in the integer.
func setItalianLeadingZeros(nationalNumber string, number *PhoneNumber) {
	if len(nationalNumber) < 2 || nationalNumber[0] != '0' {
		return
	}
	number.ItalianLeadingZero = true
	zeros := 1
	for zeros < len(nationalNumber)-1 && nationalNumber[zeros] == '0' {
		zeros++
	}
	if zeros != 1 {
		number.NumberOfLeadingZeros = zeros
	}
}

// expandGroupRefs rewrites $1..$9 references into the brace form the regexp
// package expands unambiguously.
func expandGroupRefs(template string) string {
	var sb strings.Builder
	for i := 0; i < len(template); i++ {
		if template[i] == '$' && i+1 < len(template) && template[i+1] >= '0' && template[i+1] <= '9' {
			sb.WriteString("${")
			sb.WriteByte(template[i+1])
			sb.WriteByte('}')
			i++
			continue
		}
		sb.WriteByte(template[i])
	}
	return sb.String()
}
