// Package archive compresses an export directory into the artifact the
// user asked for. The format follows the target extension.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v4"
)

func formatFor(target string) (archiver.Archiver, error) {
	name := strings.ToLower(filepath.Base(target))
	switch {
	case strings.HasSuffix(name, ".zip"):
		return archiver.Zip{}, nil
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return archiver.CompressedArchive{
			Compression: archiver.Gz{},
			Archival:    archiver.Tar{},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported archive extension on %q (use .zip, .tar.gz or .tgz)", target)
	}
}

// Create archives the contents of dir into target. Entries are rooted at
// the top of the archive, so dir/db/Dockerfile becomes db/Dockerfile.
func Create(ctx context.Context, dir, target string) error {
	format, err := formatFor(target)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read export directory: %w", err)
	}
	mapping := make(map[string]string, len(entries))
	for _, entry := range entries {
		mapping[filepath.Join(dir, entry.Name())] = entry.Name()
	}
	files, err := archiver.FilesFromDisk(nil, mapping)
	if err != nil {
		return fmt.Errorf("cannot collect export files: %w", err)
	}

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("cannot create archive %s: %w", target, err)
	}
	defer out.Close()

	if err := format.Archive(ctx, out, files); err != nil {
		return fmt.Errorf("failed to archive %s: %w", target, err)
	}
	return nil
}
