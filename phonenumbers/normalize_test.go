package phonenumbers

import "testing"

func TestNormalize_VanityNumber(t *testing.T) {
	got := Normalize("034-I-am-HUNGRY")
	if got != "034426486479" {
		t.Fatalf("expected 034426486479, got %s", got)
	}
}

func TestNormalize_StripsNonDigits(t *testing.T) {
	got := Normalize("034-56&+#2­34")
	if got != "03456234" {
		t.Fatalf("expected 03456234, got %s", got)
	}
}

func TestNormalize_WideAndArabicDigits(t *testing.T) {
	if got := Normalize("۵2۰"); got != "520" {
		t.Fatalf("expected 520, got %s", got)
	}
	if got := Normalize("１２３"); got != "123" {
		t.Fatalf("expected 123, got %s", got)
	}
	if got := Normalize("١٢٣"); got != "123" {
		t.Fatalf("expected 123, got %s", got)
	}
}

func TestNormalize_TwoLettersStayDigitsOnly(t *testing.T) {
	// Fewer than three letters means this is not a vanity number, so the
	// letters are dropped instead of mapped.
	if got := Normalize("1800-AB-123"); got != "1800123" {
		t.Fatalf("expected 1800123, got %s", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"034-I-am-HUNGRY", "1 (650) 253-0000", "۵2۰"}
	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Fatalf("normalize not idempotent for %q: %q != %q", input, twice, once)
		}
	}
}

func TestNormalizeDigitsOnly(t *testing.T) {
	if got := NormalizeDigitsOnly("034-I-am-HUNGRY"); got != "034" {
		t.Fatalf("expected 034, got %s", got)
	}
}

func TestIsViablePhoneNumber(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"111", true},
		{"12", true},
		{"08-PIZZA", false},
		{"1-650-253-0000", true},
		{"5103628154x1234", true},
		{"011 800 1234 5678", true},
		{"1 (650) 253­-0000", true},
		{"alpha", false},
		{"1", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsViablePhoneNumber(tc.input); got != tc.want {
			t.Errorf("IsViablePhoneNumber(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestExtractPossibleNumber(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Tel:0800 FOR PIZZA", "0800 FOR PIZZA"},
		{"(650) 253-0000..- ..", "650) 253-0000"},
		{"Num-１２３", "１２３"},
		{"Nothing here", ""},
		{"0800 35\\ x400", "0800 35"},
	}
	for _, tc := range cases {
		if got := extractPossibleNumber(tc.input); got != tc.want {
			t.Errorf("extractPossibleNumber(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
