package file

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databacker/devdb/pkg/storage/credentials"
)

func TestPullAndPush(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.sql")
	require.NoError(t, os.WriteFile(src, []byte("-- MySQL dump\n"), 0644))

	f := New()

	pulled := filepath.Join(dir, "pulled.sql")
	n, err := f.Pull(credentials.Creds{}, url.URL{Scheme: "file", Path: src}, pulled)
	require.NoError(t, err)
	assert.Equal(t, int64(14), n)

	pushed := filepath.Join(dir, "pushed.sql")
	_, err = f.Push(credentials.Creds{}, url.URL{Scheme: "file", Path: pushed}, pulled)
	require.NoError(t, err)

	data, err := os.ReadFile(pushed)
	require.NoError(t, err)
	assert.Equal(t, "-- MySQL dump\n", string(data))
}

func TestPullMissingSource(t *testing.T) {
	f := New()
	_, err := f.Pull(credentials.Creds{}, url.URL{Scheme: "file", Path: "/no/such/file.sql"}, filepath.Join(t.TempDir(), "out"))
	assert.Error(t, err)
}
