package main

import (
	"strings"
	"testing"

	"browser-actions/internal/domain/entity"
	"browser-actions/internal/infrastructure/env"
	"browser-actions/internal/infrastructure/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapConfig map[string]string

func (m mapConfig) Get(key string) string { return m[key] }

func (m mapConfig) GetWithDefault(key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

func (m mapConfig) GetBool(key string, def bool) bool {
	if v, ok := m[key]; ok {
		return v == "true"
	}
	return def
}

func (m mapConfig) GetInt(key string, def int) int { return def }

func (m mapConfig) GetFloat(key string, def float64) float64 {
	if _, ok := m[key]; ok {
		return 2.5
	}
	return def
}

func TestNewRootCmd_DefaultsFromConfig(t *testing.T) {
	cmd := newRootCmd(mapConfig{
		env.KeyLocatorStrategy: "xpath",
		env.KeyBrowserHeadless: "false",
		env.KeyWaitSeconds:     "2.5",
	})

	flags := cmd.PersistentFlags()
	assert.Equal(t, "xpath", flags.Lookup("locator").DefValue)
	assert.Equal(t, "false", flags.Lookup("headless").DefValue)
	assert.Equal(t, "2.5", flags.Lookup("wait").DefValue)
	assert.Equal(t, "info", flags.Lookup("log-level").DefValue)
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd(mapConfig{})

	for _, name := range []string{"run", "keys", "key-action"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	run, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)
	assert.NotNil(t, run.Flags().Lookup("screenshot"))
	assert.Error(t, run.Args(run, nil))
}

func TestLoadCommands_Stdin(t *testing.T) {
	cmd := newRootCmd(mapConfig{})
	cmd.SetIn(strings.NewReader("- action: get\n  args:\n    url: \"about:blank\"\n"))

	commands, err := loadCommands(cmd, "-")

	require.NoError(t, err)
	require.Len(t, commands, 1)
	assert.Equal(t, entity.ActionGet, commands[0].Action)
	assert.Equal(t, "about:blank", commands[0].Args["url"])
}

func TestLoadCommands_EmptyStdin(t *testing.T) {
	cmd := newRootCmd(mapConfig{})
	cmd.SetIn(strings.NewReader(""))

	_, err := loadCommands(cmd, "-")

	assert.ErrorIs(t, err, script.ErrEmptyScript)
}
