package project

import "strings"

// rHeading is used for any R file that contains an assignment.
const rHeading = "Data Analysis Task"

// DeriveHeading guesses a section title from the source text using fixed
// marker rules for the language detected from the file extension.
// Only the first Python function is considered.
func DeriveHeading(code string, detected Language) string {
	switch {
	case detected == Python && strings.Contains(code, "def "):
		return between(code, "def ", "(")
	case detected == R && strings.Contains(code, "<-"):
		return rHeading
	case detected == HTML && strings.Contains(code, "<title>"):
		return between(code, "<title>", "</title>")
	}
	return detected.String() + " Program"
}

// between returns the trimmed text after the first start marker up to the
// next end marker. The text never runs past a second start marker, and runs
// to the end of s when neither marker follows.
func between(s, start, end string) string {
	_, rest, _ := strings.Cut(s, start)
	rest, _, _ = strings.Cut(rest, start)
	inner, _, _ := strings.Cut(rest, end)
	return strings.TrimSpace(inner)
}
