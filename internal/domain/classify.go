package domain

import "strings"

// DefaultSecretKeywords are the name fragments that mark a variable as
// sensitive. Matching is plain substring and case-sensitive: env names are
// conventionally uppercase, and a lowercase "key" inside e.g. "monkey_level"
// should not drag a value into the Secret.
var DefaultSecretKeywords = []string{
	"PASS", "PASSWORD", "TOKEN", "SECRET", "KEY", "USER",
}

// Classify decides whether a variable name denotes config or secret material.
// An empty keyword list falls back to DefaultSecretKeywords.
func Classify(name string, keywords []string) Classification {
	if len(keywords) == 0 {
		keywords = DefaultSecretKeywords
	}
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return ClassSecret
		}
	}
	return ClassConfig
}
