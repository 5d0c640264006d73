package domain

import (
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"
)

// DefaultStorageSize is the PVC request used when the operator's input is
// missing or malformed.
const DefaultStorageSize = "10Gi"

var storageSuffixes = []string{"Gi", "Mi", "Ti", "G", "M", "T"}

// ValidateStorageSize checks a requested PVC size against the accepted unit
// suffixes and the platform quantity grammar. The second return is true when
// the input was rejected and the default substituted.
func ValidateStorageSize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultStorageSize, false
	}

	suffixed := false
	for _, suf := range storageSuffixes {
		if strings.HasSuffix(raw, suf) {
			suffixed = true
			break
		}
	}
	if !suffixed {
		return DefaultStorageSize, true
	}

	if _, err := resource.ParseQuantity(raw); err != nil {
		return DefaultStorageSize, true
	}
	return raw, false
}
