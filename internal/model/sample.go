package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Sample is one item being shipped. Its position in a SampleList is its packing order.
type Sample struct {
	ID     string   `json:"id"`
	Code   string   `json:"code"`
	Fields []string `json:"fields,omitempty"` // Positional column values, aligned with ColumnSet.Positional
	Weight *float64 `json:"weight,omitempty"` // nil until the sample is weighed
}

// NewSample creates a sample with a fresh short ID.
func NewSample(code string, fields ...string) Sample {
	return Sample{
		ID:     uuid.New().String()[:8],
		Code:   code,
		Fields: append([]string(nil), fields...),
	}
}

// BlankSample creates an empty placeholder sample used to leave free slots in a box.
func BlankSample() Sample {
	return NewSample("")
}

// HasWeight reports whether the sample has been weighed.
func (s Sample) HasWeight() bool {
	return s.Weight != nil
}

// WeightText returns the weight formatted without trailing zeros, or "" when unset.
func (s Sample) WeightText() string {
	if s.Weight == nil {
		return ""
	}
	return FormatWeight(*s.Weight)
}

// Display returns the grid cell text: "<code> <weight>" when weighed, "<code>" otherwise.
func (s Sample) Display() string {
	if s.Weight == nil {
		return s.Code
	}
	return fmt.Sprintf("%s %s", s.Code, FormatWeight(*s.Weight))
}

// Clone returns a deep copy of the sample.
func (s Sample) Clone() Sample {
	cp := s
	if s.Fields != nil {
		cp.Fields = make([]string, len(s.Fields))
		copy(cp.Fields, s.Fields)
	}
	if s.Weight != nil {
		w := *s.Weight
		cp.Weight = &w
	}
	return cp
}

// FormatWeight renders a weight with the shortest exact decimal representation.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// ValidateWeight rejects negative, NaN and infinite weights.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, w)
	}
	return nil
}

// ParseWeight parses operator input. Both "," and "." are accepted as decimal
// separator. Blank input yields nil, meaning "clear the weight".
func ParseWeight(text string) (*float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	w, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeight, text)
	}
	if err := ValidateWeight(w); err != nil {
		return nil, err
	}
	return &w, nil
}

// CloneSamples returns a deep copy of a samples slice.
func CloneSamples(samples []Sample) []Sample {
	if samples == nil {
		return nil
	}
	cp := make([]Sample, len(samples))
	for i, s := range samples {
		cp[i] = s.Clone()
	}
	return cp
}
