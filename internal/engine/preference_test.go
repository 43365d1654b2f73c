package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trim and drop empty", []string{" #sweet ", "", "  "}, []string{"#sweet"}},
		{"dedupe keeps first", []string{"#fruit", "#choco", "#fruit"}, []string{"#fruit", "#choco"}},
		{"truncate to first three", []string{"#a", "#b", "#c", "#d", "#e"}, []string{"#a", "#b", "#c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, NormalizeTags(tt.in)); diff != "" {
				t.Errorf("NormalizeTags() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidation(t *testing.T) {
	for _, s := range []int{0, 3, 5} {
		if err := ValidateSweetness(s); err != nil {
			t.Errorf("ValidateSweetness(%d) = %v", s, err)
		}
	}
	for _, s := range []int{-1, 6} {
		if err := ValidateSweetness(s); !errors.Is(err, ErrSweetnessOutOfRange) {
			t.Errorf("ValidateSweetness(%d) = %v, want ErrSweetnessOutOfRange", s, err)
		}
	}
	if err := ValidateBudget(0); err != nil {
		t.Errorf("zero budget should be valid: %v", err)
	}
	if err := ValidateBudget(-1); !errors.Is(err, ErrNegativeBudget) {
		t.Errorf("ValidateBudget(-1) = %v", err)
	}

	pref, err := NewPreference([]string{"#a", "#b", "#c", "#d"}, 4)
	if err != nil {
		t.Fatalf("NewPreference: %v", err)
	}
	if len(pref.Tags) != MaxTags || pref.Sweetness != 4 {
		t.Errorf("unexpected preference %+v", pref)
	}
	if _, err := NewPreference(nil, 9); err == nil {
		t.Error("expected error for sweetness 9")
	}
}
