package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the captured log output contains every substring.
func AssertLogged(t *testing.T, logs *SafeBuffer, substrings ...string) {
	t.Helper()
	out := logs.String()
	for _, s := range substrings {
		require.True(t, strings.Contains(out, s), "expected log output to contain %q, got:\n%s", s, out)
	}
}
