package engine

import (
	"errors"
	"fmt"
	"strings"

	"bakery_recommend/internal/model"
)

const (
	MaxTags      = 3
	MinSweetness = 0
	MaxSweetness = 5
)

var (
	ErrSweetnessOutOfRange = errors.New("sweetness out of range")
	ErrNegativeBudget      = errors.New("budget must not be negative")
)

// NormalizeTags 去除空白与重复标签，并只保留前 MaxTags 个
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, MaxTags)
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}

// ValidateSweetness 检查甜度是否在 [0,5]
func ValidateSweetness(s int) error {
	if s < MinSweetness || s > MaxSweetness {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrSweetnessOutOfRange, s, MinSweetness, MaxSweetness)
	}
	return nil
}

// ValidateBudget 检查预算非负
func ValidateBudget(b int) error {
	if b < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeBudget, b)
	}
	return nil
}

// NewPreference 规范化标签并校验甜度，返回可直接用于打分的偏好
func NewPreference(tags []string, sweetness int) (model.Preference, error) {
	if err := ValidateSweetness(sweetness); err != nil {
		return model.Preference{}, err
	}
	return model.Preference{Tags: NormalizeTags(tags), Sweetness: sweetness}, nil
}
