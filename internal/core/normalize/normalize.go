// Package normalize canonicalizes participant supplied identity text before it is stored or compared
// Email pipeline
// 1 strip control characters and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 remove zero-width and other format characters
// 4 lowercase
// 5 trim surrounding whitespace
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// casers are not safe for concurrent use so chains are pooled
var emailChains = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF and friends
			cases.Lower(language.Und),
		)
	},
}

var nameChains = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// Email returns the identity key for an address: "  Bob@Example.COM " and "bob@example.com" are equal
// it does not check that s is a well formed address
func Email(s string) string {
	s = strings.TrimSpace(Sanitize(s))
	if s == "" {
		return ""
	}
	return strings.TrimSpace(apply(&emailChains, s))
}

// Name tidies a display name: NFC, no control or format characters, single inner spaces
// case is preserved
func Name(s string) string {
	s = Sanitize(s)
	if s == "" {
		return ""
	}
	return collapseSpaces(apply(&nameChains, s))
}

func apply(pool *sync.Pool, s string) string {
	tr := pool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	pool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// collapseSpaces turns every whitespace run into one ASCII space and trims the ends
func collapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
