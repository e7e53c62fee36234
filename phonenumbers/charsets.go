package phonenumbers

// Keypad letter assignments per ITU E.161. Letters are only mapped when the
// input looks like a vanity number (see Normalize).
var alphaMappings = map[rune]rune{
	'A': '2', 'B': '2', 'C': '2',
	'D': '3', 'E': '3', 'F': '3',
	'G': '4', 'H': '4', 'I': '4',
	'J': '5', 'K': '5', 'L': '5',
	'M': '6', 'N': '6', 'O': '6',
	'P': '7', 'Q': '7', 'R': '7', 'S': '7',
	'T': '8', 'U': '8', 'V': '8',
	'W': '9', 'X': '9', 'Y': '9', 'Z': '9',
}

// digitMappings maps every digit variant we accept (ASCII, fullwidth,
// Arabic-Indic, Eastern Arabic-Indic) to its ASCII form.
var digitMappings = make(map[rune]rune)

// allNormalizationMappings is the union of digit and keypad-letter mappings.
var allNormalizationMappings = make(map[rune]rune)

func init() {
	for i := rune(0); i < 10; i++ {
		digitMappings['0'+i] = '0' + i
		digitMappings['０'+i] = '0' + i // fullwidth
		digitMappings['٠'+i] = '0' + i // Arabic-Indic
		digitMappings['۰'+i] = '0' + i // Eastern Arabic-Indic
	}
	for r, d := range digitMappings {
		allNormalizationMappings[r] = d
	}
	for r, d := range alphaMappings {
		allNormalizationMappings[r] = d
	}
}
