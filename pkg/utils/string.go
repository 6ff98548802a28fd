// Package utils provides common utility functions.
package utils

import "strings"

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// NormalizeWhitespace replaces every run of Unicode whitespace with a single space
// and trims both ends.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

