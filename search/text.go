// ABOUTME: Case-insensitive rune matching helpers shared by search, suggest and filter
// ABOUTME: Text is NFC-normalized and lowered rune by rune so offsets map back to the original
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// folded is NFC text kept alongside its lowered runes. Lowering is one rune
// to one rune, so an index into lower is also an index into orig.
type folded struct {
	orig  []rune
	lower []rune
}

func fold(s string) folded {
	orig := []rune(norm.NFC.String(s))
	lower := make([]rune, len(orig))
	for i, r := range orig {
		lower[i] = unicode.ToLower(r)
	}
	return folded{orig: orig, lower: lower}
}

func (f folded) String() string { return string(f.orig) }

// index returns the rune offset of the first occurrence of q, or -1.
func (f folded) index(q []rune) int {
	if len(q) == 0 || len(q) > len(f.lower) {
		return -1
	}
outer:
	for i := 0; i+len(q) <= len(f.lower); i++ {
		for j, r := range q {
			if f.lower[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}

func (f folded) contains(q []rune) bool {
	return f.index(q) >= 0
}

func (f folded) equals(q []rune) bool {
	if len(f.lower) != len(q) {
		return false
	}
	for i, r := range q {
		if f.lower[i] != r {
			return false
		}
	}
	return true
}

// foldQuery trims and lowers a query.
func foldQuery(q string) []rune {
	return fold(strings.TrimSpace(q)).lower
}

// words splits text on whitespace and strips punctuation from each word.
// Words that are only punctuation are dropped.
func words(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		w = strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return -1
			}
			return r
		}, w)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
