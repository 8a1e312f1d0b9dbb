package tokens

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTokensSection(t *testing.T) {
	path := writeTokenFile(t, `tokens:
  --spacing-4: 16px
  --color-text-primary: "#1f2937"
`)

	reg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	tok, ok := reg.Lookup("--spacing-4")
	require.True(t, ok)
	assert.Equal(t, "16px", tok.Value)
}

func TestLoadFlatMapping(t *testing.T) {
	path := writeTokenFile(t, `--spacing-2: 8px
--spacing-4: 16px
`)

	reg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"--spacing-2", "--spacing-4"}, reg.Names())
}

func TestLoadPrefixesBareNames(t *testing.T) {
	path := writeTokenFile(t, `tokens:
  spacing-4: 16px
`)

	reg, err := Load(path, nil)
	require.NoError(t, err)
	_, ok := reg.Lookup("--spacing-4")
	assert.True(t, ok)
}

func TestLoadAppliesNormalizer(t *testing.T) {
	path := writeTokenFile(t, `tokens:
  --spacing-4: 1rem
`)

	norm := func(v string) (string, string) {
		if v == "1rem" {
			return "16px", "px"
		}
		return v, ""
	}

	reg, err := Load(path, norm)
	require.NoError(t, err)

	tok, ok := reg.Lookup("--spacing-4")
	require.True(t, ok)
	assert.Equal(t, "16px", tok.Value)
	assert.Equal(t, []string{"--spacing-4"}, reg.NamesForValue("16px"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Path, "nope.yaml")
}

func TestLoadEmptyRegistry(t *testing.T) {
	path := writeTokenFile(t, `tokens: {}
`)

	_, err := Load(path, nil)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestNamesForValueSorted(t *testing.T) {
	reg := New()
	reg.Add("--spacing-lg", "16px")
	reg.Add("--spacing-4", "16px")

	assert.Equal(t, []string{"--spacing-4", "--spacing-lg"}, reg.NamesForValue("16px"))
	assert.Empty(t, reg.NamesForValue("13px"))
}
