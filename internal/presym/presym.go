// Package presym normalizes the text that becomes a PRE symbol name.
// Bracketed identifiers (`[...]`) may arrive from sources using different
// Unicode normalization forms for visually identical text; without
// normalization, two symbols that a user would consider the same action
// name could compare unequal and silently fork the alphabet. This mirrors
// tunaq's use of golang.org/x/text for text processing, generalized from
// display formatting to identity normalization.
package presym

import "golang.org/x/text/unicode/norm"

// Normalize returns s in Unicode Normalization Form C, the form symbol names
// are compared and stored in throughout the automaton packages.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
