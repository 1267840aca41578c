package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DefaultsToEmbeddedPlan(t *testing.T) {
	// --- Act ---
	appConfig, shouldExit, err := Parse(nil, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Empty(t, appConfig.PlanPath)
	assert.Empty(t, appConfig.Source)
	assert.Empty(t, appConfig.Target)
	assert.Nil(t, appConfig.Threshold, "an unset -threshold must not override the plan")
	assert.False(t, appConfig.DryRun)
	assert.Equal(t, "text", appConfig.LogFormat)
	assert.Equal(t, "info", appConfig.LogLevel)
}

func TestParse_ExplicitThresholdOverridesEvenAtDefaultValue(t *testing.T) {
	appConfig, _, err := Parse([]string{"-threshold", "100"}, &bytes.Buffer{})

	require.NoError(t, err)
	require.NotNil(t, appConfig.Threshold)
	assert.Equal(t, 100, *appConfig.Threshold)
}

func TestParse_AllOverrideFlags(t *testing.T) {
	// --- Arrange ---
	args := []string{
		"-config", "plan.hcl",
		"-csv", "export.csv",
		"-target", "index.js",
		"-threshold", "500",
		"-dry-run",
		"-log-format", "json",
		"-log-level", "debug",
	}

	// --- Act ---
	appConfig, shouldExit, err := Parse(args, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "plan.hcl", appConfig.PlanPath)
	assert.Equal(t, "export.csv", appConfig.Source)
	assert.Equal(t, "index.js", appConfig.Target)
	require.NotNil(t, appConfig.Threshold)
	assert.Equal(t, 500, *appConfig.Threshold)
	assert.True(t, appConfig.DryRun)
	assert.Equal(t, "json", appConfig.LogFormat)
	assert.Equal(t, "debug", appConfig.LogLevel)
}

func TestParse_HelpRequestsCleanExit(t *testing.T) {
	out := &bytes.Buffer{}

	_, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidInputsExitWithCode2(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--not-a-flag"}},
		{name: "bad log format", args: []string{"-log-format", "yaml"}},
		{name: "bad log level", args: []string{"-log-level", "loud"}},
		{name: "negative threshold", args: []string{"-threshold", "-5"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
