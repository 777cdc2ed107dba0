package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/mowitnow/internal/mower/core"
)

// SampleInstructions is the two-mower example whose output is "1 3 N" / "5 1 E"
const SampleInstructions = "5 5\n1 2 N\nGAGAGAGAA\n3 3 E\nAADAADADDA\n"

// SampleOutput is the expected final states for SampleInstructions
var SampleOutput = []string{"1 3 N", "5 1 E"}

// WriteInstructions writes content to a temporary instruction file and returns its path
func WriteInstructions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instructions.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// NewTestLawn returns a lawn, failing the test on invalid bounds
func NewTestLawn(t *testing.T, width, height int) core.Lawn {
	t.Helper()
	lawn, err := core.NewLawn(width, height)
	require.NoError(t, err)
	return lawn
}
