// Package testutil provides a shared harness for integration-style tests
// that drive a full regeneration run against materialized fixture files.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gc/tagforge/internal/app"
	"github.com/gc/tagforge/internal/hcl_adapter"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Fixture describes one regeneration run. CSV and Target are materialized
// into a temporary directory; PlanBody is written out as a plan file with
// source and target attributes pointing at the materialized files.
type Fixture struct {
	CSV       string
	Target    string
	PlanBody  string
	Threshold *int
	DryRun    bool
}

// Result holds the outcomes of one harness run.
type Result struct {
	LogOutput  string
	Err        error
	App        *app.App
	TargetPath string
	Target     string // target file content after the run
}

// Run materializes the fixture and executes one full regeneration run.
// Startup panics are recovered into Result.Err so broken-plan cases can be
// asserted like any other failure.
func Run(t *testing.T, fx Fixture) *Result {
	t.Helper()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "tags.csv")
	targetPath := filepath.Join(dir, "index.js")
	planPath := filepath.Join(dir, "plan.hcl")

	require.NoError(t, os.WriteFile(csvPath, []byte(fx.CSV), 0o644))
	require.NoError(t, os.WriteFile(targetPath, []byte(fx.Target), 0o644))
	plan := fmt.Sprintf("source = %q\ntarget = %q\n\n%s", csvPath, targetPath, fx.PlanBody)
	require.NoError(t, os.WriteFile(planPath, []byte(plan), 0o644))

	appConfig, err := app.NewConfig(app.Config{
		PlanPath:  planPath,
		Threshold: fx.Threshold,
		DryRun:    fx.DryRun,
		LogFormat: "text",
		LogLevel:  "debug",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("TAGFORGE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	result := &Result{TargetPath: targetPath}
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked: %v", r)
			}
		}()
		result.App = app.NewApp(logBuffer, appConfig, hcl_adapter.NewLoader())
	}()
	if result.Err == nil {
		result.Err = result.App.Run(context.Background())
	}

	after, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	result.LogOutput = logBuffer.String()
	result.Target = string(after)
	return result
}
