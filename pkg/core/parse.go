package core

import (
	"net/url"
	"strings"
)

// smartParse parse a url, but convert "/" into "file:///"
func smartParse(raw string) (*url.URL, error) {
	if strings.HasPrefix(raw, "/") {
		raw = "file://" + raw
	}

	return url.Parse(raw)
}

// isRemote reports whether the parsed target needs a storage backend
// rather than plain filesystem access.
func isRemote(u *url.URL) bool {
	return u.Scheme == "s3" || u.Scheme == "smb"
}
