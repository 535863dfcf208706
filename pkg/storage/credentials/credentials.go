package credentials

// Creds carries the optional credentials the remote storage backends
// need. Zero values mean "use the backend's own defaults" (URL userinfo
// for SMB, the standard AWS chain for S3).
type Creds struct {
	AWSEndpoint string
	SMBUser     string
	SMBPass     string
}
