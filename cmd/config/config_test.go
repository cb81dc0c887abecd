package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alan/pr-checks/cmd"
	internalconfig "github.com/alan/pr-checks/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfig(t *testing.T) {
	tests := []struct {
		name      string
		opts      configOptions
		existing  *cmd.Config
		saveError bool
		wantErr   error
		check     func(t *testing.T, saved *cmd.Config)
	}{
		{
			name: "initialize with OCA URL",
			opts: configOptions{ocaURL: "https://oca.example.com/api"},
			check: func(t *testing.T, saved *cmd.Config) {
				assert.Equal(t, "https://oca.example.com/api", saved.OCA.BaseURL)
				assert.Equal(t, []string{"oracle.com"}, saved.OCA.ExemptEmailDomains)
				assert.Equal(t, "PR Label Check", saved.Status.Context)
			},
		},
		{
			name: "all flags",
			opts: configOptions{
				ocaURL:          "https://oca.example.com",
				exemptDomains:   []string{"example.com", "example.org"},
				statusContext:   "Labels",
				statusTargetURL: "https://ci.example.com",
				signedLabel:     "oca-signed",
				notSignedLabel:  "oca-missing",
				pollAttempts:    3,
				pollInterval:    2 * time.Second,
			},
			check: func(t *testing.T, saved *cmd.Config) {
				assert.Equal(t, []string{"example.com", "example.org"}, saved.OCA.ExemptEmailDomains)
				assert.Equal(t, "Labels", saved.Status.Context)
				assert.Equal(t, "https://ci.example.com", saved.Status.TargetURL)
				assert.Equal(t, "oca-signed", saved.Labels.Signed.Name)
				assert.Equal(t, "oca-missing", saved.Labels.NotSigned.Name)
				assert.Equal(t, 3, saved.Poll.Attempts)
				assert.Equal(t, 2*time.Second, saved.Poll.Interval)
			},
		},
		{
			name: "partial update keeps existing values",
			opts: configOptions{pollAttempts: 20},
			existing: func() *cmd.Config {
				cfg := cmd.DefaultConfig()
				cfg.OCA.BaseURL = "https://existing.example.com"
				cfg.Status.Context = "Existing Context"
				return cfg
			}(),
			check: func(t *testing.T, saved *cmd.Config) {
				assert.Equal(t, "https://existing.example.com", saved.OCA.BaseURL)
				assert.Equal(t, "Existing Context", saved.Status.Context)
				assert.Equal(t, 20, saved.Poll.Attempts)
			},
		},
		{
			name:    "relative OCA URL",
			opts:    configOptions{ocaURL: "oca.example.com"},
			wantErr: cmd.ErrInvalidArguments,
		},
		{
			name:    "negative poll attempts",
			opts:    configOptions{pollAttempts: -1},
			wantErr: cmd.ErrInvalidArguments,
		},
		{
			name:    "negative poll interval",
			opts:    configOptions{pollInterval: -time.Second},
			wantErr: cmd.ErrInvalidArguments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "pr-checks.yaml")

			loadConfig := func(string) (*cmd.Config, error) {
				if tt.existing != nil {
					return tt.existing, nil
				}
				return cmd.DefaultConfig(), nil
			}

			var saved *cmd.Config
			saveConfig := func(_ string, config *cmd.Config) error {
				saved = config
				return nil
			}

			err := runConfig(configPath, &tt.opts, loadConfig, saveConfig)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, saved, "nothing is saved on invalid input")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, saved)
			tt.check(t, saved)
		})
	}
}

func TestRunConfig_Errors(t *testing.T) {
	opts := &configOptions{ocaURL: "https://oca.example.com"}

	t.Run("load error", func(t *testing.T) {
		err := runConfig("x.yaml", opts,
			func(string) (*cmd.Config, error) { return nil, fmt.Errorf("failed to parse config file") },
			func(string, *cmd.Config) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load existing configuration")
	})

	t.Run("save error", func(t *testing.T) {
		err := runConfig("x.yaml", opts,
			func(string) (*cmd.Config, error) { return cmd.DefaultConfig(), nil },
			func(string, *cmd.Config) error { return fmt.Errorf("save error") })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save configuration: save error")
	})
}

func TestRunConfig_RoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".github", "pr-checks.yaml")

	require.NoError(t, runConfig(configPath, &configOptions{ocaURL: "https://oca.example.com"}, internalconfig.LoadConfig, internalconfig.SaveConfig))
	require.NoError(t, runConfig(configPath, &configOptions{statusContext: "Labels"}, internalconfig.LoadConfig, internalconfig.SaveConfig))

	loaded, err := internalconfig.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "https://oca.example.com", loaded.OCA.BaseURL)
	assert.Equal(t, "Labels", loaded.Status.Context)

	_, err = os.Stat(configPath)
	assert.NoError(t, err)
}

func TestNewConfigCmd(t *testing.T) {
	configFile := "test-config.yaml"
	cobraCmd := NewConfigCmd(&configFile,
		func(string) (*cmd.Config, error) { return cmd.DefaultConfig(), nil },
		func(string, *cmd.Config) error { return nil })

	assert.Equal(t, "config", cobraCmd.Use)
	assert.Nil(t, cobraCmd.Flags().Lookup("config"), "config file flag is global")

	for _, name := range []string{"oca-url", "exempt-domain", "status-context", "status-target-url", "signed-label", "not-signed-label", "poll-attempts", "poll-interval"} {
		assert.NotNil(t, cobraCmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestNewConfigCmd_Execute(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "pr-checks.yaml")
	var saved *cmd.Config
	cobraCmd := NewConfigCmd(&configFile,
		func(string) (*cmd.Config, error) { return cmd.DefaultConfig(), nil },
		func(_ string, config *cmd.Config) error { saved = config; return nil })

	cobraCmd.SetArgs([]string{"--exempt-domain", "example.com", "--exempt-domain", "example.org", "--poll-interval", "3s"})
	require.NoError(t, cobraCmd.Execute())

	require.NotNil(t, saved)
	assert.Equal(t, []string{"example.com", "example.org"}, saved.OCA.ExemptEmailDomains)
	assert.Equal(t, 3*time.Second, saved.Poll.Interval)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poll:\n  attempts: 1\n"), 0600))

	assert.True(t, fileExists(path))
	assert.False(t, fileExists(filepath.Join(dir, "absent.yaml")))
}
