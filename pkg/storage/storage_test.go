package storage

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForURL(t *testing.T) {
	for _, tt := range []struct {
		raw     string
		wantErr bool
	}{
		{raw: "file:///tmp/dump.sql"},
		{raw: "s3://bucket/dump.sql"},
		{raw: "smb://host/share/dump.sql"},
		{raw: "ftp://host/dump.sql", wantErr: true},
	} {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := url.Parse(tt.raw)
			require.NoError(t, err)
			store, err := ForURL(u)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown url protocol")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, store)
		})
	}
}
