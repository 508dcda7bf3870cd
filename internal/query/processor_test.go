package query

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercase", "iPhone 16 PRO", "iphone 16 pro"},
		{"punctuation stripped", "sasta & accha phone!!", "sasta accha phone"},
		{"whitespace collapsed", "  samsung   galaxy \t s24 ", "samsung galaxy s24"},
		{"empty", "", ""},
		{"only punctuation", "?!*&", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTranslateHinglish(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sastha wala iphone", "cheap with iphone"},
		{"sasta mobile chahiye", "cheap mobile want"},
		{"naya samsung dikhao", "new samsung show"},
		// Whole-word only: embedded occurrences are untouched.
		{"walay sastana", "walay sastana"},
		{"iphone 16", "iphone 16"},
	}
	for _, tt := range tests {
		if got := translateHinglish(tt.in); got != tt.want {
			t.Errorf("translateHinglish(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCorrectSpelling(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dictionary hit", "ifone 16", "iphone 16"},
		{"dictionary multiword", "samsang galxy", "samsung galaxy"},
		{"edit distance brand", "samsing phone", "samsung phone"},
		{"edit distance category", "laptap", "laptop"},
		{"short words skipped", "jbl red", "jbl red"},
		// "phone" is one edit from "iphone" but is a vocabulary term itself.
		{"vocabulary exact left alone", "phone cover", "phone cover"},
		{"clean text unchanged", "apple iphone 16 pro", "apple iphone 16 pro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CorrectSpelling(tt.in); got != tt.want {
				t.Errorf("CorrectSpelling(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	t.Run("misspelled brand query", func(t *testing.T) {
		q := Process("Ifone 16")
		if q.Normalized != "ifone 16" {
			t.Errorf("Normalized = %q", q.Normalized)
		}
		if q.Corrected != "iphone 16" {
			t.Errorf("Corrected = %q", q.Corrected)
		}
		if q.Intent.FilterBy.Brand != "apple" {
			t.Errorf("Brand = %q, want apple", q.Intent.FilterBy.Brand)
		}
		if q.Intent.FilterBy.Model != "16" {
			t.Errorf("Model = %q, want 16", q.Intent.FilterBy.Model)
		}
		if !reflect.DeepEqual(q.Keywords, []string{"iphone", "16"}) {
			t.Errorf("Keywords = %v", q.Keywords)
		}
	})

	t.Run("hinglish query", func(t *testing.T) {
		q := Process("Sastha wala iPhone")
		if q.Corrected != "cheap with iphone" {
			t.Errorf("Corrected = %q", q.Corrected)
		}
		if q.Intent.SortBy != SortPriceAsc {
			t.Errorf("SortBy = %q, want %q", q.Intent.SortBy, SortPriceAsc)
		}
		if q.Intent.FilterBy.Brand != "apple" {
			t.Errorf("Brand = %q, want apple", q.Intent.FilterBy.Brand)
		}
		if !reflect.DeepEqual(q.Intent.SearchTerms, []string{"iphone"}) {
			t.Errorf("SearchTerms = %v", q.Intent.SearchTerms)
		}
	})

	t.Run("empty query", func(t *testing.T) {
		q := Process("   !!! ")
		if q.Corrected != "" {
			t.Errorf("Corrected = %q, want empty", q.Corrected)
		}
		if len(q.Keywords) != 0 {
			t.Errorf("Keywords = %v, want empty", q.Keywords)
		}
	})
}
