package avatars

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dreamias/internal/common"
)

func TestNewStore_CreatesDir(t *testing.T) {
	base := t.TempDir()

	s, err := NewStore(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "avatars"), s.Dir())
	info, err := os.Stat(s.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStore_BaseIsFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(base, []byte("x"), 0o600))

	_, err := NewStore(base)
	require.Error(t, err)
}

func TestSave_CopiesAndReturnsFileURI(t *testing.T) {
	base := t.TempDir()
	s, err := NewStore(base)
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(src, []byte("image-bytes"), 0o600))

	ref, err := s.Save("a+b@x.com", src)
	require.NoError(t, err)

	want := filepath.Join(base, "avatars", "avatar_a_b_x.com.jpg")
	assert.Equal(t, FileURI(want), ref)
	assert.Equal(t, "file://"+filepath.ToSlash(want), ref)

	got, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(got))
}

func TestSave_OverwritesPrevious(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	dir := t.TempDir()
	first := filepath.Join(dir, "1.jpg")
	second := filepath.Join(dir, "2.jpg")
	require.NoError(t, os.WriteFile(first, []byte("first-and-longer"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("second"), 0o600))

	ref1, err := s.Save("a@x.com", first)
	require.NoError(t, err)
	ref2, err := s.Save("a@x.com", second)
	require.NoError(t, err)
	assert.Equal(t, ref1, ref2)

	got, err := os.ReadFile(s.Path("a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestSave_Errors(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("a@x.com", "  ")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Save("a@x.com", filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
	_, statErr := os.Stat(s.Path("a@x.com"))
	assert.True(t, os.IsNotExist(statErr))
}
