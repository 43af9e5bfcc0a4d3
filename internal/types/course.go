// Package types provides type definitions for structured data used throughout the course-export system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

const (
	// MinNumberLength is the shortest course number the report layout can address.
	MinNumberLength = 10
	// DepartmentCodeLength is the width of the department prefix of a course number.
	DepartmentCodeLength = 4
)

// Course is a single selected course scraped from the registration page.
type Course struct {
	Number string `json:"number" validate:"required,min=10"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
}

// Validate validates the Course using the validator.
func (c *Course) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// DepartmentCode returns the first four characters of the course number.
func (c Course) DepartmentCode() string {
	return segment(c.Number, 0, DepartmentCodeLength)
}

// Prefix returns characters 0..8 of the course number (department and sub-codes).
func (c Course) Prefix() string {
	return segment(c.Number, 0, 8)
}

// Suffix returns characters 8..10 of the course number (the group sequence).
func (c Course) Suffix() string {
	return segment(c.Number, 8, 10)
}

// segment slices s by code points, clamping to the string length.
func segment(s string, from, to int) string {
	runes := []rune(s)
	if from > len(runes) {
		from = len(runes)
	}
	if to > len(runes) {
		to = len(runes)
	}
	return string(runes[from:to])
}
