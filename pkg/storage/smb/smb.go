package smb

import (
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/hirochachacha/go-smb2"

	"github.com/databacker/devdb/pkg/storage/credentials"
)

type SMB struct{}

func New() *SMB {
	return &SMB{}
}

func (s *SMB) Pull(creds credentials.Creds, u url.URL, target string) (int64, error) {
	return smbCommand(false, creds, u, target)
}

func (s *SMB) Push(creds credentials.Creds, u url.URL, source string) (int64, error) {
	return smbCommand(true, creds, u, source)
}

func smbCommand(push bool, creds credentials.Creds, u url.URL, filename string) (int64, error) {
	username, password := creds.SMBUser, creds.SMBPass
	// fall back to credentials embedded in the URL
	if username == "" && u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
	}

	hostname := u.Host
	if u.Port() == "" {
		hostname = net.JoinHostPort(u.Hostname(), "445")
	}
	share, sharepath := parseSMBPath(u.Path)

	conn, err := net.Dial("tcp", hostname)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     username,
			Password: password,
		},
	}

	sess, err := d.Dial(conn)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = sess.Logoff()
	}()

	fs, err := sess.Mount(share)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = fs.Umount()
	}()

	var (
		from io.ReadCloser
		to   io.WriteCloser
	)
	if push {
		from, err = os.Open(filename)
		if err != nil {
			return 0, err
		}
		defer from.Close()
		to, err = fs.Create(strings.TrimPrefix(sharepath, "/"))
		if err != nil {
			return 0, err
		}
		defer to.Close()
	} else {
		to, err = os.Create(filename)
		if err != nil {
			return 0, err
		}
		defer to.Close()
		from, err = fs.Open(strings.TrimPrefix(sharepath, "/"))
		if err != nil {
			return 0, err
		}
		defer from.Close()
	}
	return io.Copy(to, from)
}

// parseSMBPath parse an smb path into its constituent parts
func parseSMBPath(path string) (share, sharepath string) {
	path = strings.TrimPrefix(path, "/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) <= 1 {
		return path, ""
	}
	// need to put back the / as it is part of the actual sharepath
	return parts[0], fmt.Sprintf("/%s", parts[1])
}
