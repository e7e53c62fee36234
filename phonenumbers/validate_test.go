package phonenumbers

import "testing"

func TestGetNumberType(t *testing.T) {
	cases := []struct {
		name   string
		number string
		region string
		want   PhoneNumberType
	}{
		{"US regular", "650-253-0000", "US", FixedLineOrMobile},
		{"US toll free", "800-234-5678", "US", TollFree},
		{"US premium", "900-234-5678", "US", PremiumRate},
		{"US personal", "500-234-5678", "US", PersonalNumber},
		{"GB fixed", "020 7031 3000", "GB", FixedLine},
		{"GB mobile", "07912 345678", "GB", Mobile},
		{"GB pager", "07612 345678", "GB", Pager},
		{"GB shared cost", "0843 123 4567", "GB", SharedCost},
		{"IT fixed", "02 3661 8300", "IT", FixedLine},
		{"IT mobile", "312 345 6789", "IT", Mobile},
		{"SG voip", "3123 4567", "SG", VoIP},
		{"AR mobile", "0343 15 555 1212", "AR", Mobile},
		{"intl toll free", "+800 1234 5678", "US", TollFree},
		{"universal premium", "+979 123 456 789", "US", PremiumRate},
		{"too short for region", "253-0000", "US", Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := mustParse(t, tc.number, tc.region)
			if got := GetNumberType(parsed); got != tc.want {
				t.Fatalf("GetNumberType = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsValidNumber(t *testing.T) {
	valid := []struct {
		number string
		region string
	}{
		{"650-253-0000", "US"},
		{"242 357 0000", "BS"},
		{"02 3661 8300", "IT"},
		{"07912 345678", "GB"},
		{"+80012345678", "IT"},
	}
	for _, tc := range valid {
		if !IsValidNumber(mustParse(t, tc.number, tc.region)) {
			t.Errorf("expected %q (%s) to be valid", tc.number, tc.region)
		}
	}

	invalid := []struct {
		number string
		region string
	}{
		{"253-0000", "US"},
		{"912 345 6789", "IT"},
	}
	for _, tc := range invalid {
		if IsValidNumber(mustParse(t, tc.number, tc.region)) {
			t.Errorf("expected %q (%s) to be invalid", tc.number, tc.region)
		}
	}
}

func TestIsValidNumberForRegion(t *testing.T) {
	usNumber := mustParse(t, "650-253-0000", "US")
	if !IsValidNumberForRegion(usNumber, "US") {
		t.Fatalf("US number should be valid for US")
	}
	if IsValidNumberForRegion(usNumber, "GB") {
		t.Fatalf("US number should not be valid for GB")
	}
	if IsValidNumberForRegion(usNumber, "ZZ") {
		t.Fatalf("unknown region should gracefully fail")
	}

	tollFree := mustParse(t, "+800 1234 5678", "US")
	if !IsValidNumberForRegion(tollFree, RegionCodeForNonGeoEntity) {
		t.Fatalf("international toll free should be valid for 001")
	}
	if IsValidNumberForRegion(usNumber, RegionCodeForNonGeoEntity) {
		t.Fatalf("a geographic number is not valid for 001")
	}
}

func TestGetRegionCodeForNumber(t *testing.T) {
	if got := GetRegionCodeForNumber(mustParse(t, "+16502530000", "DE")); got != "US" {
		t.Fatalf("expected US, got %q", got)
	}
	if got := GetRegionCodeForNumber(mustParse(t, "+12423570000", "DE")); got != "BS" {
		t.Fatalf("expected BS, got %q", got)
	}
	if got := GetRegionCodeForNumber(mustParse(t, "+80012345678", "DE")); got != "001" {
		t.Fatalf("expected 001, got %q", got)
	}
}

func TestGetRegionCodeForCountryCode(t *testing.T) {
	if got := GetRegionCodeForCountryCode(1); got != "US" {
		t.Fatalf("expected US, got %q", got)
	}
	if got := GetRegionCodeForCountryCode(800); got != "001" {
		t.Fatalf("expected 001, got %q", got)
	}
	if got := GetRegionCodeForCountryCode(999); got != UnknownRegion {
		t.Fatalf("expected ZZ, got %q", got)
	}
}

func TestMainRegionMatchesCountryCodeLookup(t *testing.T) {
	// The main region of every calling code must resolve back to itself.
	regions := []string{"US", "GB", "DE", "IT", "AR", "MX", "BR", "AU", "SG"}
	for _, region := range regions {
		countryCode := GetCountryCodeForRegion(region)
		if countryCode == 0 {
			t.Fatalf("no country code for region %s", region)
		}
		if got := GetRegionCodeForCountryCode(countryCode); got != region {
			t.Errorf("region %s: country code %d resolves to %s", region, countryCode, got)
		}
	}
}

func TestGetNddPrefixForRegion(t *testing.T) {
	if got := GetNddPrefixForRegion("US", false); got != "1" {
		t.Fatalf("expected 1, got %q", got)
	}
	if got := GetNddPrefixForRegion("GB", false); got != "0" {
		t.Fatalf("expected 0, got %q", got)
	}
	if got := GetNddPrefixForRegion("IT", false); got != "" {
		t.Fatalf("IT has no national prefix, got %q", got)
	}
	if got := GetNddPrefixForRegion("ZZ", false); got != "" {
		t.Fatalf("unknown region should yield empty prefix, got %q", got)
	}
}

func TestIsNANPACountry(t *testing.T) {
	if !IsNANPACountry("US") || !IsNANPACountry("BS") {
		t.Fatalf("US and BS are NANPA regions")
	}
	if !IsNANPACountry("us") {
		t.Fatalf("region comparison should ignore case")
	}
	if IsNANPACountry("GB") || IsNANPACountry("") {
		t.Fatalf("GB is not a NANPA region")
	}
}

func TestIsLeadingZeroPossible(t *testing.T) {
	if IsLeadingZeroPossible(1) {
		t.Fatalf("leading zero is not possible for NANPA")
	}
	if !IsLeadingZeroPossible(800) {
		t.Fatalf("leading zero is possible for international toll free")
	}
	if !IsLeadingZeroPossible(39) {
		t.Fatalf("leading zero is possible for IT")
	}
	if IsLeadingZeroPossible(999) {
		t.Fatalf("unknown country code cannot have leading zeros")
	}
}
