// Package storage moves single artifacts (dump files in, export archives
// out) between the local filesystem and a URL-addressed location.
package storage

import (
	"fmt"
	"net/url"

	"github.com/databacker/devdb/pkg/storage/credentials"
	"github.com/databacker/devdb/pkg/storage/file"
	"github.com/databacker/devdb/pkg/storage/s3"
	"github.com/databacker/devdb/pkg/storage/smb"
)

// Storage pulls a remote object to a local path or pushes a local file to
// a remote object. The URL addresses the exact object, not a directory.
type Storage interface {
	Pull(creds credentials.Creds, u url.URL, target string) (int64, error)
	Push(creds credentials.Creds, u url.URL, source string) (int64, error)
}

// ForURL selects the backend matching the URL scheme.
func ForURL(u *url.URL) (Storage, error) {
	switch u.Scheme {
	case "file":
		return file.New(), nil
	case "s3":
		return s3.New(), nil
	case "smb":
		return smb.New(), nil
	default:
		return nil, fmt.Errorf("unknown url protocol: %s", u.Scheme)
	}
}
