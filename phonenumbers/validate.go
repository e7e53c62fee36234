package phonenumbers

import (
	"strings"

	"phonekit/phonenumbers/metadata"
)

// PhoneNumberType classifies a number within its region's numbering plan.
type PhoneNumberType int

const (
	// Unknown means the number matches no descriptor of the region.
	Unknown PhoneNumberType = iota
	// FixedLine is a geographic landline number.
	FixedLine
	// Mobile is a mobile number.
	Mobile
	// FixedLineOrMobile covers plans where the two ranges are not
	// distinguishable, such as NANPA.
	FixedLineOrMobile
	// TollFree is free to the caller.
	TollFree
	// PremiumRate is billed above standard rates.
	PremiumRate
	// SharedCost splits the charge between caller and callee.
	SharedCost
	// VoIP is a voice-over-IP number.
	VoIP
	// PersonalNumber routes to a person rather than a line.
	PersonalNumber
	// Pager is a pager number.
	Pager
	// UAN is a universal access ("company") number.
	UAN
	// Voicemail is a voicemail access number.
	Voicemail
)

// GetNumberType classifies the number against the metadata of the region it
// belongs to. Numbers that fit no region descriptor come back Unknown.
func (u *Util) GetNumberType(number *PhoneNumber) PhoneNumberType {
	regionCode := u.GetRegionCodeForNumber(number)
	md := u.metadataForRegionOrCallingCode(number.CountryCode, regionCode)
	if md == nil {
		return Unknown
	}
	return numberTypeForNSN(GetNationalSignificantNumber(number), md)
}

// numberTypeForNSN walks the descriptors in declaration order; the first
// match decides the type, with fixed-line and mobile resolved last.
func numberTypeForNSN(nsn string, md *metadata.PhoneMetadata) PhoneNumberType {
	if !md.GeneralDesc.MatchesNational(nsn) {
		return Unknown
	}
	switch {
	case matchesDesc(nsn, md.PremiumRate):
		return PremiumRate
	case matchesDesc(nsn, md.TollFree):
		return TollFree
	case matchesDesc(nsn, md.SharedCost):
		return SharedCost
	case matchesDesc(nsn, md.VoIP):
		return VoIP
	case matchesDesc(nsn, md.PersonalNumber):
		return PersonalNumber
	case matchesDesc(nsn, md.Pager):
		return Pager
	case matchesDesc(nsn, md.UAN):
		return UAN
	case matchesDesc(nsn, md.Voicemail):
		return Voicemail
	}
	if matchesDesc(nsn, md.FixedLine) {
		if md.SameMobileAndFixedLinePattern || matchesDesc(nsn, md.Mobile) {
			return FixedLineOrMobile
		}
		return FixedLine
	}
	if !md.SameMobileAndFixedLinePattern && matchesDesc(nsn, md.Mobile) {
		return Mobile
	}
	return Unknown
}

// matchesDesc requires the national significant number to satisfy both the
// possible and the national pattern of the descriptor, entirely.
func matchesDesc(nsn string, desc *metadata.PhoneNumberDesc) bool {
	return desc.MatchesPossible(nsn) && desc.MatchesNational(nsn)
}

// IsValidNumber reports whether the number is valid for the region it
// resolves to.
func (u *Util) IsValidNumber(number *PhoneNumber) bool {
	regionCode := u.GetRegionCodeForNumber(number)
	return isValidRegionCode(regionCode) && u.IsValidNumberForRegion(number, regionCode)
}

// IsValidNumberForRegion reports whether the number is valid specifically
// within the given region; the region must own the number's country code
// (or be the non-geographical entity region).
func (u *Util) IsValidNumberForRegion(number *PhoneNumber, regionCode string) bool {
	md := u.metadataForRegionOrCallingCode(number.CountryCode, regionCode)
	if md == nil {
		return false
	}
	if regionCode != RegionCodeForNonGeoEntity &&
		number.CountryCode != u.GetCountryCodeForRegion(regionCode) {
		return false
	}
	nsn := GetNationalSignificantNumber(number)
	if !md.GeneralDesc.HasNationalNumberPattern() {
		// Regions without a general pattern fall back to a length check.
		return len(nsn) > MinLengthForNSN && len(nsn) <= MaxLengthForNSN
	}
	return numberTypeForNSN(nsn, md) != Unknown
}

// GetRegionCodeForNumber resolves the region a number belongs to. For
// calling codes shared by several regions the leading digits, or failing
// that a successful classification, decide; empty means undetermined.
func (u *Util) GetRegionCodeForNumber(number *PhoneNumber) string {
	if number == nil {
		return ""
	}
	regions := u.store.RegionsForCountryCode(number.CountryCode)
	if len(regions) == 0 {
		return ""
	}
	if len(regions) == 1 {
		return regions[0]
	}
	nsn := GetNationalSignificantNumber(number)
	for _, regionCode := range regions {
		md := u.store.MetadataForRegion(regionCode)
		if md == nil {
			continue
		}
		if leadingDigits := md.LeadingDigitsPattern(); leadingDigits != nil {
			if leadingDigits.MatchString(nsn) {
				return regionCode
			}
		} else if numberTypeForNSN(nsn, md) != Unknown {
			return regionCode
		}
	}
	return ""
}

// GetRegionCodeForCountryCode returns the main region for a country calling
// code, or "ZZ" when the code is unknown.
func (u *Util) GetRegionCodeForCountryCode(countryCode int) string {
	regions := u.store.RegionsForCountryCode(countryCode)
	if len(regions) == 0 {
		return UnknownRegion
	}
	return regions[0]
}

// GetCountryCodeForRegion returns the country calling code of a region, or
// 0 when the region is unknown.
func (u *Util) GetCountryCodeForRegion(regionCode string) int {
	md := u.store.MetadataForRegion(regionCode)
	if md == nil {
		return 0
	}
	return md.CountryCode
}

// GetNddPrefixForRegion returns the national dialling prefix of a region,
// optionally stripped of non-digit markers such as the wait-for-tone tilde.
// Empty means the region is unknown or has no prefix.
func (u *Util) GetNddPrefixForRegion(regionCode string, stripNonDigits bool) string {
	md := u.store.MetadataForRegion(regionCode)
	if md == nil || md.NationalPrefix == "" {
		return ""
	}
	nationalPrefix := md.NationalPrefix
	if stripNonDigits {
		nationalPrefix = strings.ReplaceAll(nationalPrefix, "~", "")
	}
	return nationalPrefix
}

// IsNANPACountry reports whether the region participates in the North
// American Numbering Plan.
func (u *Util) IsNANPACountry(regionCode string) bool {
	for _, region := range u.store.RegionsForCountryCode(NANPACountryCode) {
		if strings.EqualFold(region, regionCode) {
			return true
		}
	}
	return false
}

// IsLeadingZeroPossible reports whether numbers under a calling code may
// meaningfully begin with a zero.
func (u *Util) IsLeadingZeroPossible(countryCode int) bool {
	md := u.metadataForRegionOrCallingCode(countryCode, u.GetRegionCodeForCountryCode(countryCode))
	return md != nil && md.LeadingZeroPossible
}

func (u *Util) hasValidCountryCallingCode(countryCode int) bool {
	return len(u.store.RegionsForCountryCode(countryCode)) > 0
}

func (u *Util) metadataForRegionOrCallingCode(countryCode int, regionCode string) *metadata.PhoneMetadata {
	if regionCode == RegionCodeForNonGeoEntity {
		return u.store.MetadataForNonGeoEntity(countryCode)
	}
	return u.store.MetadataForRegion(regionCode)
}
