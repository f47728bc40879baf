package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScenarioGoldens runs every scenario under testdata/scenarios and
// compares its analysis report against the matching golden file.
func TestScenarioGoldens(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		s, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(s.Name, func(t *testing.T) {
			RunWithGolden(t, s)
		})
	}
}
