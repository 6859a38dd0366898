package cli

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/crlserver/internal/app"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"-player", "alice",
				"--config=/etc/crlserver.hcl",
				"--games=/srv/games",
				"--playground=/srv/playground",
				"--misc=/srv/misc",
				"--log-level=DEBUG",
				"--log-format=json",
				"--no-screen",
			},
			expectedConfig: &app.Config{
				ConfigPath:    "/etc/crlserver.hcl",
				GamesDir:      "/srv/games",
				PlaygroundDir: "/srv/playground",
				MiscDir:       "/srv/misc",
				LogLevel:      "debug",
				LogFormat:     "json",
				Player:        "alice",
				NoScreen:      true,
			},
		},
		{
			name:           "Positional player and defaults",
			args:           []string{"bob"},
			expectedConfig: &app.Config{Player: "bob"},
		},
		{
			name:           "Flag wins over positional argument",
			args:           []string{"-player", "carol", "dave"},
			expectedConfig: &app.Config{Player: "carol"},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
			},
		},
		{
			name:       "No player triggers clean exit with usage",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "crlserver [options] [PLAYER]")
			},
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=loud", "alice"},
			expectErr: true,
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml", "alice"},
			expectErr: true,
		},
		{
			name:      "Unknown flag returns an error",
			args:      []string{"--grid=/x"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.expectErr {
				require.Error(t, err)
				exitErr, isExitError := err.(*ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				require.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
					t.Errorf("config mismatch (-want +got):\n%s", diff)
				}
			}
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}
