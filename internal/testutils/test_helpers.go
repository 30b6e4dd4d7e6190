package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"hostshell/pkg/hosttypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WriteProfile writes a host profile file into a temp dir and returns its path.
func WriteProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// AssertHasFlags asserts that flags contains every bit of want.
func AssertHasFlags(t *testing.T, flags hosttypes.HostFlags, want hosttypes.HostFlags) {
	t.Helper()
	assert.True(t, flags.Has(want), "expected %s to contain %s", flags, want)
}

// AssertLacksFlags asserts that flags contains no bit of unwanted.
func AssertLacksFlags(t *testing.T, flags hosttypes.HostFlags, unwanted hosttypes.HostFlags) {
	t.Helper()
	assert.Zero(t, flags&unwanted, "expected %s not to contain %s", flags, unwanted)
}

// StateValue returns the value of key in a QueryState result.
func StateValue(state []hosttypes.StatePair, key string) (string, bool) {
	for _, pair := range state {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}
