package phonenumbers

import "regexp"

const (
	// MaxInputStringLength bounds the raw input before any regex is applied,
	// to keep pathological inputs from tying up the matcher.
	MaxInputStringLength = 250

	// MinLengthForNSN is the shortest national significant number we accept.
	MinLengthForNSN = 2
	// MaxLengthForNSN is the longest national significant number we accept.
	MaxLengthForNSN = 17
	// MaxLengthCountryCode is the longest country calling code (e.g. 998).
	MaxLengthCountryCode = 3

	// NANPACountryCode is the country calling code shared by the North
	// American Numbering Plan regions.
	NANPACountryCode = 1

	// RegionCodeForNonGeoEntity identifies non-geographical entities such as
	// international toll-free numbers.
	RegionCodeForNonGeoEntity = "001"
	// UnknownRegion is returned when no region can be determined.
	UnknownRegion = "ZZ"

	defaultExtnPrefix = " ext. "

	rfc3966Prefix         = "tel:"
	rfc3966PhoneContext   = ";phone-context="
	rfc3966IsdnSubaddress = ";isub="
	rfc3966ExtnPrefix     = ";ext="

	plusChars   = "+＋"
	validDigits = "0-9０-９٠-٩۰-۹"
	validAlpha  = "A-Za-z"
	starSign    = "*"

	// Punctuation tolerated inside a number: the dash family, whitespace
	// variants (including soft hyphen and zero-width characters), brackets,
	// and a few separators seen in the wild.
	validPunctuation = "-x‐-―−ー－-／" +
		"  ­​⁠　" +
		"()（）［］" +
		".\\[\\]/~⁓∼～"

	captureExtnDigits = "([" + validDigits + "]{1,7})"
)

// extnPatternsForParsing recognises the extension part of a number, in three
// shapes: the RFC 3966 ";ext=" form, an explicit label (ext, x, #, int,
// anexo, fullwidth spellings) followed by digits, and the American
// dash-digits-# style.
const extnPatternsForParsing = rfc3966ExtnPrefix + captureExtnDigits + "|" +
	"[  \\t,]*" +
	"(?:e?xt(?:ensi(?:ó?|ó))?n?|ｅ?ｘｔｎ?|" +
	"[,xｘ#＃~～]|int|anexo|ｉｎｔ)" +
	"[:\\.．]?[  \\t,-]*" + captureExtnDigits + "#?|" +
	"[- ]+([" + validDigits + "]{1,5})#"

const (
	minLengthPhoneNumber = "[" + validDigits + "]{2}"
	validPhoneNumber     = "[" + plusChars + "]*" +
		"(?:[" + validPunctuation + starSign + "]*[" + validDigits + "]){3,}" +
		"[" + validPunctuation + starSign + validAlpha + validDigits + "]*"
)

var (
	validPhoneNumberRegexp = regexp.MustCompile(
		"(?i)^(?:" + minLengthPhoneNumber + ")$|^(?:" + validPhoneNumber +
			"(?:" + extnPatternsForParsing + ")?)$")

	extnRegexp = regexp.MustCompile("(?i)(?:" + extnPatternsForParsing + ")$")

	validStartCharRegexp    = regexp.MustCompile("[" + plusChars + validDigits + "]")
	unwantedEndCharsRegexp  = regexp.MustCompile("[^" + validDigits + validAlpha + "#]+$")
	secondNumberStartRegexp = regexp.MustCompile(`[\\/] *x`)

	leadingPlusCharsRegexp = regexp.MustCompile("^[" + plusChars + "]+")
	capturingDigitRegexp   = regexp.MustCompile("([" + validDigits + "])")

	// A number is treated as a vanity number when it carries at least three
	// keypad letters.
	validAlphaPhoneRegexp = regexp.MustCompile("^(?:.*?[A-Za-z]){3}.*$")

	// An international prefix formattable in front of a number: plain digits,
	// possibly split by a wave-dash ("dial 8, wait for tone, dial 10").
	uniqueInternationalPrefixRegexp = regexp.MustCompile(
		"^[0-9]+(?:[~⁓∼～][0-9]+)?$")

	firstGroupRegexp = regexp.MustCompile(`\$\d`)

	separatorRegexp        = regexp.MustCompile("[" + validPunctuation + "]+")
	leadingSeparatorRegexp = regexp.MustCompile("^[" + validPunctuation + "]+")
)
