package common

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// CheckReadable verifies that path exists, has the expected kind and can be
// opened for reading.
func CheckReadable(path string, wantDir bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return classifyPathError(path, err)
	}
	if wantDir && !info.IsDir() {
		return fmt.Errorf("%w: directory %s", ErrNotFound, path)
	}
	if !wantDir && info.IsDir() {
		return fmt.Errorf("%w: file %s", ErrNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return classifyPathError(path, err)
	}
	return f.Close()
}

// ReadFile reads a whole file, mapping failures to ErrNotFound or ErrPermissionDenied.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classifyPathError(path, err)
	}
	return data, nil
}

// CopyFile copies src to dst. An existing dst is left alone unless overwrite is set;
// the return value reports whether a copy was written.
func CopyFile(src, dst string, overwrite bool) (bool, error) {
	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return false, nil
		}
	}

	in, err := os.Open(src)
	if err != nil {
		return false, classifyPathError(src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", src, err)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := WriteFileAtomic(dst, data, info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFileAtomic writes data to a uniquely named temp file next to path and
// renames it into place, so readers never see a partial file.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return classifyPathError(tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func classifyPathError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
}

// SplitLines splits file content into lines without their terminators. A final
// newline does not produce an extra empty line.
func SplitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
