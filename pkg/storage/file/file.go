package file

import (
	"io"
	"net/url"
	"os"

	"github.com/databacker/devdb/pkg/storage/credentials"
)

type File struct{}

func New() *File {
	return &File{}
}

func (f *File) Pull(creds credentials.Creds, u url.URL, target string) (int64, error) {
	return copyFile(u.Path, target)
}

func (f *File) Push(creds credentials.Creds, u url.URL, source string) (int64, error) {
	return copyFile(source, u.Path)
}

// copyFile copy a file from to as efficiently as possible
func copyFile(from, to string) (int64, error) {
	src, err := os.Open(from)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return 0, err
	}
	defer dst.Close()
	n, err := io.Copy(dst, src)
	return n, err
}
