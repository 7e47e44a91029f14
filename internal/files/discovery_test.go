package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func TestFindDumpFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		ext      string
		expected []string
	}{
		{
			name:     "only dumps",
			files:    []string{"b.pkl", "a.pkl"},
			ext:      ".pkl",
			expected: []string{"a.pkl", "b.pkl"},
		},
		{
			name:     "mixed file types",
			files:    []string{"run.pkl", "run.csv", "notes.txt"},
			ext:      ".pkl",
			expected: []string{"run.pkl"},
		},
		{
			name:     "extension is case-sensitive",
			files:    []string{"upper.PKL", "lower.pkl"},
			ext:      ".pkl",
			expected: []string{"lower.pkl"},
		},
		{
			name:     "custom extension",
			files:    []string{"run.dump", "run.pkl"},
			ext:      ".dump",
			expected: []string{"run.dump"},
		},
		{
			name:     "empty directory",
			ext:      ".pkl",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			dir := filepath.Join(base, "dumps")
			require.NoError(t, os.Mkdir(dir, 0755))
			require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pkl"), 0755))
			writeFiles(t, dir, tt.files...)

			found, err := NewDiscovery(base).FindDumpFiles("dumps", tt.ext)
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindDumpFiles_AbsoluteAndMissing(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "run.pkl")
	d := NewDiscovery("/nonexistent/base")

	found, err := d.FindDumpFiles(dir, ".pkl")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "run", found[0].Stem())
	assert.Equal(t, int64(1), found[0].Size)

	_, err = d.FindDumpFiles("missing", ".pkl")
	assert.Error(t, err)
}

func TestFindFilesByPattern(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "steel_1.pkl", "steel_2.pkl", "iron.pkl")

	found, err := NewDiscovery(dir).FindFilesByPattern(".", "steel_*.pkl")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = NewDiscovery(dir).FindFilesByPattern(".", "[")
	assert.Error(t, err)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "old.pkl", ModTime: now.Add(-time.Hour)},
		{Name: "new.pkl", ModTime: now},
		{Name: "mid.pkl", ModTime: now.Add(-time.Minute)},
	}

	latest, ok := GetLatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "new.pkl", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}
