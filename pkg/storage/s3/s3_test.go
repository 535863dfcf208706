package s3

import (
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databacker/devdb/pkg/storage/credentials"
)

func fakeS3(t *testing.T) (string, gofakes3.Backend) {
	t.Helper()
	backend := s3mem.New()
	faker := gofakes3.New(backend)
	server := httptest.NewServer(faker.Server())
	t.Cleanup(server.Close)

	t.Setenv("AWS_ACCESS_KEY_ID", "devdb-test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "devdb-test")
	t.Setenv("AWS_REGION", "us-east-1")

	require.NoError(t, backend.CreateBucket("dumps"))
	return server.URL, backend
}

func TestPushThenPull(t *testing.T) {
	endpoint, _ := fakeS3(t)
	creds := credentials.Creds{AWSEndpoint: endpoint}
	s := New()

	dir := t.TempDir()
	src := filepath.Join(dir, "dump.sql")
	require.NoError(t, os.WriteFile(src, []byte("-- PostgreSQL database dump\n"), 0644))

	u, err := url.Parse("s3://dumps/nested/dump.sql")
	require.NoError(t, err)

	n, err := s.Push(creds, *u, src)
	require.NoError(t, err)
	assert.Equal(t, int64(28), n)

	target := filepath.Join(dir, "pulled.sql")
	n, err = s.Pull(creds, *u, target)
	require.NoError(t, err)
	assert.Equal(t, int64(28), n)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "-- PostgreSQL database dump\n", string(data))
}

func TestPullMissingObject(t *testing.T) {
	endpoint, _ := fakeS3(t)
	creds := credentials.Creds{AWSEndpoint: endpoint}
	s := New()

	u, err := url.Parse("s3://dumps/absent.sql")
	require.NoError(t, err)

	_, err = s.Pull(creds, *u, filepath.Join(t.TempDir(), "out.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to download")
}
