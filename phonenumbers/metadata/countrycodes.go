package metadata

// nonGeoEntityRegion marks entries that do not belong to a geographical
// region, such as international toll-free numbers.
const nonGeoEntityRegion = "001"

// CountryCodeToRegion maps each country calling code to the region codes
// that share it. The first entry is the main region for the code. This
// table ships alongside the metadata document and covers the same set of
// territories.
var CountryCodeToRegion = map[int][]string{
	1:   {"US", "BS"},
	39:  {"IT"},
	44:  {"GB"},
	49:  {"DE"},
	52:  {"MX"},
	54:  {"AR"},
	55:  {"BR"},
	61:  {"AU"},
	65:  {"SG"},
	800: {nonGeoEntityRegion},
	979: {nonGeoEntityRegion},
}
