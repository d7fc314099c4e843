package audiofile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundleaf/soundleaf-server/internal/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("not real audio"), 0o600))
}

func TestIsValid_AllowedExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	v := NewValidator(nil)

	for _, ext := range DefaultExtensions {
		path := filepath.Join(tmpDir, "track."+ext)
		touch(t, path)
		assert.True(t, v.IsValid(path), "extension %s should be allowed", ext)
	}
}

func TestIsValid_CaseInsensitiveExtension(t *testing.T) {
	tmpDir := t.TempDir()
	v := NewValidator(nil)

	path := filepath.Join(tmpDir, "track.MP3")
	touch(t, path)
	assert.True(t, v.IsValid(path))

	path = filepath.Join(tmpDir, "track.FlAc")
	touch(t, path)
	assert.True(t, v.IsValid(path))
}

func TestIsValid_NonexistentPath(t *testing.T) {
	v := NewValidator(nil)
	assert.False(t, v.IsValid(filepath.Join(t.TempDir(), "missing.mp3")))
}

func TestIsValid_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "album.mp3")
	require.NoError(t, os.Mkdir(dir, 0o750))

	v := NewValidator(nil)
	assert.False(t, v.IsValid(dir), "a directory named like an audio file is rejected")
}

func TestIsValid_DisallowedExtension(t *testing.T) {
	tmpDir := t.TempDir()
	v := NewValidator(nil)

	for _, name := range []string{"notes.txt", "setup.exe", "track.mp3.bak"} {
		path := filepath.Join(tmpDir, name)
		touch(t, path)
		assert.False(t, v.IsValid(path), "%s should be rejected", name)
	}
}

func TestIsValid_NoExtension(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "trackmp3")
	touch(t, path)

	v := NewValidator(nil)
	assert.False(t, v.IsValid(path))
}

func TestIsValid_DanglingSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "gone.mp3")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "never-existed.mp3"), link))

	v := NewValidator(nil)
	assert.False(t, v.IsValid(link))
}

func TestIsValid_SymlinkToRegularFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "real.flac")
	touch(t, target)

	link := filepath.Join(tmpDir, "link.flac")
	require.NoError(t, os.Symlink(target, link))

	v := NewValidator(nil)
	assert.True(t, v.IsValid(link), "symlink to a regular file resolves and passes")
}

func TestValidate_TypedErrors(t *testing.T) {
	tmpDir := t.TempDir()
	v := NewValidator(nil)

	err := v.Validate(filepath.Join(tmpDir, "missing.mp3"))
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	txt := filepath.Join(tmpDir, "readme.txt")
	touch(t, txt)
	err = v.Validate(txt)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))

	dir := filepath.Join(tmpDir, "folder.mp3")
	require.NoError(t, os.Mkdir(dir, 0o750))
	err = v.Validate(dir)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestNewValidator_CustomExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	v := NewValidator([]string{".MKA", " webm "})

	mka := filepath.Join(tmpDir, "track.mka")
	touch(t, mka)
	assert.True(t, v.IsValid(mka))

	mp3 := filepath.Join(tmpDir, "track.mp3")
	touch(t, mp3)
	assert.False(t, v.IsValid(mp3), "custom list replaces the defaults")
}

func TestExtensions_Snapshot(t *testing.T) {
	v := NewValidator(nil)
	assert.ElementsMatch(t, DefaultExtensions, v.Extensions())
}
