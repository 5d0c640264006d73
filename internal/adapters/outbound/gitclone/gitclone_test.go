package gitclone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubefold/kubefold/internal/adapters/outbound/gitclone"
)

func TestValidateURL(t *testing.T) {
	require.NoError(t, gitclone.ValidateURL("https://github.com/acme/telephone.git"))
	require.NoError(t, gitclone.ValidateURL("http://git.internal/acme/telephone"))

	for _, raw := range []string{"git@github.com:acme/telephone.git", "ftp://x", "telephone", ""} {
		assert.Error(t, gitclone.ValidateURL(raw), "URL %q should be rejected", raw)
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/telephone.git", "telephone"},
		{"https://github.com/acme/telephone", "telephone"},
		{"https://github.com/acme/telephone/", "telephone"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gitclone.ProjectName(tt.url), "ProjectName(%q)", tt.url)
	}
}
