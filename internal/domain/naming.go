package domain

import (
	"strings"

	"github.com/fatih/camelcase"
	"k8s.io/apimachinery/pkg/util/validation"
)

// DefaultNamespace is used when scrubbing the requested namespace yields
// nothing usable.
const DefaultNamespace = "default"

// UnitName derives the image/deployment name for a Dockerfile's directory.
// A root-level Dockerfile names the unit after the project alone; anything
// else would surface a literal "root" or "." segment in resource names.
func UnitName(projectName, dir string) string {
	project := Slugify(projectName)
	if dir == "." || dir == "" || dir == "/" {
		return project
	}
	return project + "-" + Slugify(dir)
}

// Slugify turns an arbitrary path segment into a DNS-1123 friendly slug:
// CamelCase words split into hyphenated segments, everything lowercased,
// and any character outside [a-z0-9-] replaced with a hyphen.
func Slugify(s string) string {
	s = strings.Trim(s, "/")
	var words []string
	for _, seg := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '_' || r == ' ' || r == '.' || r == '-'
	}) {
		words = append(words, camelcase.Split(seg)...)
	}

	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteByte('-')
		}
		for _, r := range strings.ToLower(w) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
				b.WriteRune(r)
			} else {
				b.WriteByte('-')
			}
		}
	}

	out := b.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}

// ScrubNamespace sanitizes a requested namespace down to a valid DNS-1123
// label. The second return is true when the input was unusable and the
// default was substituted; the caller surfaces that as a warning, never an
// error.
func ScrubNamespace(raw string) (string, bool) {
	ns := Slugify(raw)
	if ns == "" || len(validation.IsDNS1123Label(ns)) > 0 {
		return DefaultNamespace, true
	}
	return ns, false
}
