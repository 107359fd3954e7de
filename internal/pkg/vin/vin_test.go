package vin

import "testing"

func TestValid(t *testing.T) {
	cases := []struct {
		name string
		vin  string
		want bool
	}{
		{"canonical valid", "1HGBH41JXMN109186", true},
		{"contains uppercase I", "1HGBH41JXMN10918I", false},
		{"contains lowercase i", "1hgbh41jxmn10918i", false},
		{"contains O", "1HGBH41JXMN10918O", false},
		{"contains Q", "QHGBH41JXMN109186", false},
		{"too short", "1HGBH41JXMN10918", false},
		{"too long", "1HGBH41JXMN1091867", false},
		{"empty", "", false},
		{"non-alphanumeric", "1HGBH41JX-N109186", false},
		{"whitespace", "1HGBH41JX N109186", false},
		{"all digits", "12345678901234567", true},
		{"lowercase valid", "1hgbh41jxmn109186", true},
	}

	for _, tc := range cases {
		if got := Valid(tc.vin); got != tc.want {
			t.Errorf("%s: Valid(%q) = %v, want %v", tc.name, tc.vin, got, tc.want)
		}
	}
}
