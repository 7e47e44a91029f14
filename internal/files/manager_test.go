package files

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrumloader/internal/shared/testutil"
)

func TestManager_WriteFile(t *testing.T) {
	logger, records := testutil.NewTestLogger(t)
	base := t.TempDir()
	m := NewManager(base, logger)

	require.NoError(t, m.WriteFile("steel/line.csv", []byte("id\n")))

	content, err := os.ReadFile(filepath.Join(base, "steel", "line.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id\n", string(content))
	assert.True(t, m.FileExists("steel/line.csv"))
	assert.False(t, m.FileExists("steel/active.csv"))
	testutil.AssertLogAttr(t, records, "size_bytes", int64(3))
}

func TestManager_Create(t *testing.T) {
	base := t.TempDir()
	m := NewManager(base, nil)

	w, err := m.Create("nested/dir/out.txt")
	require.NoError(t, err)
	_, err = io.WriteString(w, "hello")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content, err := os.ReadFile(filepath.Join(base, "nested", "dir", "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestManager_ResolvePath(t *testing.T) {
	m := NewManager("/base", nil)

	assert.Equal(t, filepath.Join("/base", "a", "b.csv"), m.ResolvePath("a/b.csv"))
	assert.Equal(t, "/abs/file.csv", m.ResolvePath("/abs/file.csv"))
}

func TestManager_EnsureDirectory(t *testing.T) {
	base := t.TempDir()
	m := NewManager(base, nil)

	require.NoError(t, m.EnsureDirectory("x/y"))
	require.NoError(t, m.EnsureDirectory("x/y"))

	info, err := os.Stat(filepath.Join(base, "x", "y"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
