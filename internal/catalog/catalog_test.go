package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEmbeddedDefault(t *testing.T) {
	require.NoError(t, Init(""))
	assert.Equal(t, 9, Stats())
	for _, id := range IDs() {
		assert.True(t, IsValidID(id), "embedded id %q is invalid", id)
	}
}

func TestIDsReturnsCopy(t *testing.T) {
	require.NoError(t, Init(""))
	a := IDs()
	a[0] = "mutated"
	assert.NotEqual(t, a[0], IDs()[0])
}

func TestIsValidID(t *testing.T) {
	cases := map[string]bool{
		"A000045": true,
		"A1":      true,
		"A":       false,
		"B000045": false,
		"A00004x": false,
		"":        false,
		"000045":  false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsValidID(in), "IsValidID(%q)", in)
	}
}

func TestNormalizeFiltersAndUppercases(t *testing.T) {
	got := normalize([]string{
		"a000045",
		"# comment",
		"",
		"   A000040  ",
		"not-an-id",
	})
	assert.Equal(t, []string{"A000045", "A000040"}, got)
}

func TestReadIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.txt")
	require.NoError(t, os.WriteFile(path, []byte("A000045\n# skip\nA000217\n"), 0o644))

	got, err := readIDFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A000045", "A000217"}, got)
}

func TestReadIDFileMissing(t *testing.T) {
	_, err := readIDFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
