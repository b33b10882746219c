package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore() (*Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewStore(fs, "/home/u/.staffdesk/session.json"), fs
}

func TestStore_SetGetClear(t *testing.T) {
	s, fs := newMemStore()

	_, ok := s.Get()
	assert.False(t, ok, "empty store must report no session")
	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	want := Session{Token: "T", Role: "employee", ID: "1"}
	require.NoError(t, s.Set(want))

	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, "T", s.Token())

	info, err := fs.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	exists, _ := afero.Exists(fs, s.Path()+".tmp")
	assert.False(t, exists, "temp file must be renamed away")

	require.NoError(t, s.Clear())
	_, ok = s.Get()
	assert.False(t, ok)
	assert.NoError(t, s.Clear(), "clearing twice is fine")
}

func TestStore_SurvivesNewInstance(t *testing.T) {
	s, fs := newMemStore()
	require.NoError(t, s.Set(Session{Token: "T", Role: "admin", ID: "9"}))

	again := NewStore(fs, s.Path())
	got, ok := again.Get()
	require.True(t, ok)
	assert.Equal(t, "admin", got.Role)
}

func TestStore_CorruptFile(t *testing.T) {
	s, fs := newMemStore()
	require.NoError(t, fs.MkdirAll("/home/u/.staffdesk", 0o700))
	require.NoError(t, afero.WriteFile(fs, s.Path(), []byte("{"), 0o600))

	_, err := s.Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSession))
	assert.Equal(t, "", s.Token())
}

func TestDefault(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	s, _ := newMemStore()
	SetDefault(s)
	assert.Same(t, s, Default())
}

func TestSession_Expiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  exp.Unix(),
	}).SignedString([]byte("test-only"))
	require.NoError(t, err)

	got, ok := Session{Token: tok}.Expiry()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = Session{Token: "opaque"}.Expiry()
	assert.False(t, ok)
	_, ok = Session{}.Claims()
	assert.False(t, ok)
}
