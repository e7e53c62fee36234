package metadata

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// descriptorNA marks a number class that does not exist in a region.
const descriptorNA = "NA"

// document is the decoded metadata document: the ordered territory entries
// under phoneNumberMetadata.territories.territory.
type document struct {
	territories []map[string]any
}

// decodeDocument accepts the metadata document as JSON or YAML and pulls out
// the territory array. Only the bytes are consumed here; fetching them is
// the caller's concern.
func decodeDocument(raw []byte) (*document, error) {
	tree := make(map[string]any)
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("decode metadata document: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("decode metadata document: %w", err)
		}
	}

	territoryList := asList(getMap(getMap(tree, "phoneNumberMetadata"), "territories")["territory"])
	if len(territoryList) == 0 {
		return nil, fmt.Errorf("metadata document has no territories")
	}

	doc := &document{}
	for _, entry := range territoryList {
		if m, ok := entry.(map[string]any); ok {
			doc.territories = append(doc.territories, m)
		}
	}
	return doc, nil
}

// findTerritory scans for the entry whose id equals key, or — for
// non-geographical entities, which share the id "001" — whose country code
// equals key.
func (d *document) findTerritory(key string) map[string]any {
	for _, t := range d.territories {
		if getString(t, "id") == key {
			return t
		}
		if getString(t, "id") == nonGeoEntityRegion && getIntAsString(t, "countryCode") == key {
			return t
		}
	}
	return nil
}

// buildTerritory turns one decoded territory entry into PhoneMetadata with
// every regex validated and compiled.
func buildTerritory(t map[string]any) *PhoneMetadata {
	md := &PhoneMetadata{
		ID:                           getString(t, "id"),
		CountryCode:                  getInt(t, "countryCode"),
		InternationalPrefix:          getString(t, "internationalPrefix"),
		PreferredInternationalPrefix: getString(t, "preferredInternationalPrefix"),
		NationalPrefix:               getString(t, "nationalPrefix"),
		NationalPrefixForParsing:     getString(t, "nationalPrefixForParsing"),
		NationalPrefixTransformRule:  getString(t, "nationalPrefixTransformRule"),
		PreferredExtnPrefix:          getString(t, "preferredExtnPrefix"),
		LeadingDigits:                getString(t, "leadingDigits"),
		MainCountryForCode:           getBool(t, "mainCountryForCode"),
		LeadingZeroPossible:          getBool(t, "leadingZeroPossible"),
		MobileNumberPortableRegion:   getBool(t, "mobileNumberPortableRegion"),
	}
	if md.NationalPrefixForParsing == "" {
		md.NationalPrefixForParsing = md.NationalPrefix
	}

	general := buildDesc(t["generalDesc"], nil)
	md.GeneralDesc = general

	// Fixed line and mobile inherit the general descriptor when absent;
	// every other class collapses to a non-matching descriptor instead.
	md.FixedLine = buildDescOrInherit(t, "fixedLine", general)
	md.Mobile = buildDescOrInherit(t, "mobile", general)
	md.UAN = buildDescOrNA(t, "uan", general)
	md.TollFree = buildDescOrNA(t, "tollFree", general)
	md.PremiumRate = buildDescOrNA(t, "premiumRate", general)
	md.SharedCost = buildDescOrNA(t, "sharedCost", general)
	md.VoIP = buildDescOrNA(t, "voip", general)
	md.PersonalNumber = buildDescOrNA(t, "personalNumber", general)
	md.Pager = buildDescOrNA(t, "pager", general)
	md.Voicemail = buildDescOrNA(t, "voicemail", general)
	md.NoInternationalDialling = buildDescOrNA(t, "noInternationalDialling", general)
	md.Emergency = buildDescOrNA(t, "emergency", general)
	md.StandardRate = buildDescOrNA(t, "standardRate", general)
	md.ShortCode = buildDescOrNA(t, "shortCode", general)
	md.CarrierSpecific = buildDescOrNA(t, "carrierSpecific", general)

	md.SameMobileAndFixedLinePattern =
		md.FixedLine.NationalNumberPattern == md.Mobile.NationalNumberPattern

	loadFormats(md, getMap(t, "availableFormats"))

	md.iddRE = compilePrefix(validateRegex(md.InternationalPrefix))
	md.nationalPrefixForParsingRE = compilePrefix(validateRegex(md.NationalPrefixForParsing))
	md.leadingDigitsRE = compilePrefix(validateRegex(md.LeadingDigits))
	return md
}

func loadFormats(md *PhoneMetadata, available map[string]any) {
	if available == nil {
		return
	}
	parentNPRule := getString(available, "nationalPrefixFormattingRule")
	parentCCRule := getString(available, "carrierCodeFormattingRule")

	for _, entry := range asList(available["numberFormat"]) {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		nf := &NumberFormat{
			Pattern:              validateRegex(getString(m, "pattern")),
			Format:               getString(m, "format"),
			LeadingDigitsPattern: validateAll(getStringList(m, "leadingDigits")),
			NationalPrefixOptionalWhenFormatting: getBool(m, "nationalPrefixOptionalWhenFormatting"),
		}

		npRule := getString(m, "nationalPrefixFormattingRule")
		if npRule == "" {
			npRule = parentNPRule
		}
		nf.NationalPrefixFormattingRule = resolveRulePlaceholders(npRule, md.NationalPrefix)

		ccRule := getString(m, "carrierCodeFormattingRule")
		if ccRule == "" {
			ccRule = parentCCRule
		}
		// $CC stays in place; it is resolved with the actual carrier code at
		// formatting time.
		nf.DomesticCarrierCodeFormattingRule = resolveRulePlaceholders(ccRule, md.NationalPrefix)

		nf.patternRE = compileEntire(nf.Pattern)
		if n := len(nf.LeadingDigitsPattern); n > 0 {
			nf.leadingRE = compilePrefix(nf.LeadingDigitsPattern[n-1])
		}
		md.NumberFormats = append(md.NumberFormats, nf)

		// Only explicitly different international formats are retained; when
		// none is declared the international list stays empty and formatting
		// falls back to the national list.
		intlFormat := getString(m, "intlFormat")
		if intlFormat != "" && intlFormat != descriptorNA {
			intl := *nf
			intl.Format = intlFormat
			md.IntlNumberFormats = append(md.IntlNumberFormats, &intl)
		}
	}
}

// resolveRulePlaceholders substitutes $NP with the region's national prefix
// and $FG with the first-group reference.
func resolveRulePlaceholders(rule, nationalPrefix string) string {
	if rule == "" {
		return ""
	}
	rule = strings.ReplaceAll(rule, "$NP", nationalPrefix)
	return strings.ReplaceAll(rule, "$FG", "$1")
}

func buildDescOrInherit(t map[string]any, key string, general *PhoneNumberDesc) *PhoneNumberDesc {
	if _, ok := t[key]; ok {
		return buildDesc(t[key], general)
	}
	return copyDesc(general)
}

func buildDescOrNA(t map[string]any, key string, general *PhoneNumberDesc) *PhoneNumberDesc {
	if _, ok := t[key]; ok {
		return buildDesc(t[key], general)
	}
	return &PhoneNumberDesc{
		NationalNumberPattern: descriptorNA,
		PossibleNumberPattern: descriptorNA,
	}
}

// buildDesc reads one descriptor element, inheriting any field the element
// does not override from the general descriptor.
func buildDesc(elem any, general *PhoneNumberDesc) *PhoneNumberDesc {
	d := copyDesc(general)
	if m, ok := elem.(map[string]any); ok {
		if p := getString(m, "nationalNumberPattern"); p != "" {
			d.NationalNumberPattern = validateRegexKeepNA(p)
		}
		if p := getString(m, "possibleNumberPattern"); p != "" {
			d.PossibleNumberPattern = validateRegexKeepNA(p)
		}
		if e := getString(m, "exampleNumber"); e != "" {
			d.ExampleNumber = e
		}
	}
	d.compile()
	return d
}

func copyDesc(general *PhoneNumberDesc) *PhoneNumberDesc {
	d := &PhoneNumberDesc{}
	if general != nil {
		d.NationalNumberPattern = general.NationalNumberPattern
		d.PossibleNumberPattern = general.PossibleNumberPattern
		d.ExampleNumber = general.ExampleNumber
	}
	d.compile()
	return d
}

func (d *PhoneNumberDesc) compile() {
	d.nationalRE = compileEntire(d.NationalNumberPattern)
	d.possibleRE = compileEntire(d.PossibleNumberPattern)
	d.possiblePrefixRE = compilePrefix(d.PossibleNumberPattern)
}

// validateRegex collapses embedded whitespace and rejects patterns carrying
// the "|)" defect seen in hand-edited documents. A rejected pattern becomes
// empty, which callers treat as non-matching.
func validateRegex(pattern string) string {
	pattern = collapseWhitespace(pattern)
	if pattern == "" || pattern == descriptorNA {
		return ""
	}
	if strings.Contains(pattern, "|)") {
		return ""
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return ""
	}
	return pattern
}

// validateRegexKeepNA preserves the NA sentinel so descriptor comparison and
// introspection keep seeing it, while still rejecting malformed patterns.
func validateRegexKeepNA(pattern string) string {
	if collapseWhitespace(pattern) == descriptorNA {
		return descriptorNA
	}
	if v := validateRegex(pattern); v != "" {
		return v
	}
	return descriptorNA
}

func validateAll(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, validateRegex(p))
	}
	return out
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func compileEntire(pattern string) *regexp.Regexp {
	if pattern == "" || pattern == descriptorNA {
		return nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil
	}
	return re
}

func compilePrefix(pattern string) *regexp.Regexp {
	if pattern == "" || pattern == descriptorNA {
		return nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil
	}
	return re
}

// Generic tree accessors. The document arrives as map[string]any whether it
// was JSON or YAML; values are read leniently since both codecs differ in
// how they surface numbers and single-element lists.

func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

func getBool(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

func getInt(m map[string]any, key string) int {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func getIntAsString(m map[string]any, key string) string {
	if n := getInt(m, key); n != 0 {
		return strconv.Itoa(n)
	}
	return ""
}

func getStringList(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return []any{t}
	case nil:
		return nil
	}
	return nil
}
