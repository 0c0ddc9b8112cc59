package srcfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	withBOM := filepath.Join(dir, "bom.cs")
	plain := filepath.Join(dir, "plain.cs")
	require.NoError(t, os.WriteFile(withBOM, []byte("\xEF\xBB\xBFnamespace A {}"), 0644))
	require.NoError(t, os.WriteFile(plain, []byte("namespace B {}"), 0644))

	data, err := ReadFile(withBOM)
	require.NoError(t, err)
	assert.Equal(t, "namespace A {}", string(data))

	data, err = ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "namespace B {}", string(data))

	_, err = ReadFile(filepath.Join(dir, "absent.cs"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
