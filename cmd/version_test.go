package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/version"
)

func TestVersionCommand(t *testing.T) {
	origVersion := version.Version
	origCommit := version.Commit
	defer func() {
		version.Version = origVersion
		version.Commit = origCommit
	}()

	tests := []struct {
		name     string
		ver      string
		commit   string
		expected string
	}{
		{
			name:     "development version without commit",
			ver:      "development",
			commit:   "unknown",
			expected: "tally version development\n",
		},
		{
			name:     "release version with commit",
			ver:      "1.0.0",
			commit:   "abc1234",
			expected: "tally version 1.0.0+abc1234\n",
		},
		{
			name:     "unknown commit shows only version",
			ver:      "2.0.0",
			commit:   "unknown",
			expected: "tally version 2.0.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version.Version = tt.ver
			version.Commit = tt.commit

			var buf bytes.Buffer
			versionCmd.SetOut(&buf)
			require.NoError(t, versionCmd.RunE(versionCmd, nil))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}
