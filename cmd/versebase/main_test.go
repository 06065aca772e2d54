package main

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newLogLevelContext(t *testing.T, level string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", "info", "")
	require.NoError(t, set.Set("log-level", level))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			assert.NoError(t, setupLogger(newLogLevelContext(t, level)), "level %q", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newLogLevelContext(t, "verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("debug enables debug logging", func(t *testing.T) {
		require.NoError(t, setupLogger(newLogLevelContext(t, "debug")))
		assert.True(t, slog.Default().Enabled(nil, slog.LevelDebug))
	})
}

func TestCommonFlags(t *testing.T) {
	flags := commonFlags()

	findString := func(name string) *cli.StringFlag {
		for _, f := range flags {
			if sf, ok := f.(*cli.StringFlag); ok && sf.Name == name {
				return sf
			}
		}
		return nil
	}

	t.Run("db is required", func(t *testing.T) {
		dbFlag := findString("db")
		require.NotNil(t, dbFlag)
		assert.True(t, dbFlag.Required)
	})

	t.Run("embedding-host has default value", func(t *testing.T) {
		hostFlag := findString("embedding-host")
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("tavily key read from environment", func(t *testing.T) {
		keyFlag := findString("tavily-api-key")
		require.NotNil(t, keyFlag)
		assert.Contains(t, keyFlag.EnvVars, "TAVILY_API_KEY")
	})
}
