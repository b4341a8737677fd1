package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGeometry is returned when a box geometry has non-positive rows or columns.
	ErrInvalidGeometry = errors.New("box rows and columns must be positive and separator rows non-negative")
	// ErrIndexOutOfRange is returned when a sample index does not address an existing sample.
	ErrIndexOutOfRange = errors.New("sample index out of range")
	// ErrInvalidWeight is returned when a weight is negative, NaN, infinite or unparsable.
	ErrInvalidWeight = errors.New("weight must be a finite non-negative number")
	// ErrMissingColumns is returned when imported data lacks a required column.
	ErrMissingColumns = errors.New("required columns not found")
)

// MissingColumnsError names the required columns absent from an imported table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("cannot find required columns in imported data: %s", strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}
