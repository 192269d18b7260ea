package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReadable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "water.out")
	require.NoError(t, os.WriteFile(file, []byte("IR SPECTRUM\n"), 0600))

	tests := []struct {
		wantErr error
		name    string
		path    string
		wantDir bool
	}{
		{name: "readable file", path: file},
		{name: "readable directory", path: dir, wantDir: true},
		{name: "missing file", path: filepath.Join(dir, "nope.out"), wantErr: ErrNotFound},
		{name: "file where directory expected", path: file, wantDir: true, wantErr: ErrNotFound},
		{name: "directory where file expected", path: dir, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckReadable(tt.path, tt.wantDir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckReadable_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}
	file := filepath.Join(t.TempDir(), "locked.nma")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0000))

	assert.ErrorIs(t, CheckReadable(file, false), ErrPermissionDenied)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.nma")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	require.NoError(t, WriteFileAtomic(path, []byte("new"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestCopyFile_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "report.nma")
	dst := src + ".orig"
	require.NoError(t, os.WriteFile(src, []byte("first"), 0600))

	copied, err := CopyFile(src, dst, false)
	require.NoError(t, err)
	assert.True(t, copied)

	require.NoError(t, os.WriteFile(src, []byte("second"), 0600))
	copied, err = CopyFile(src, dst, false)
	require.NoError(t, err)
	assert.False(t, copied)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	copied, err = CopyFile(src, dst, true)
	require.NoError(t, err)
	assert.True(t, copied)
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "no trailing newline", input: "a\nb", want: []string{"a", "b"}},
		{name: "trailing newline", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank lines kept", input: "a\n\nb\n\n", want: []string{"a", "", "b", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines([]byte(tt.input)))
		})
	}
}
