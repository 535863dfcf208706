package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/databacker/devdb/pkg/archive"
	"github.com/databacker/devdb/pkg/render"
	"github.com/databacker/devdb/pkg/storage"
)

// Export renders the build context into a temp directory and archives it
// to the requested target, never touching the container engine. Layout:
// db/Dockerfile plus the copied dump, and for compose exports
// docker-compose.yaml at the archive root.
func Export(ctx context.Context, cfg Config) error {
	target := cfg.ToDocker
	withCompose := false
	if cfg.ToCompose != "" {
		target = cfg.ToCompose
		withCompose = true
	}

	u, err := smartParse(target)
	if err != nil {
		return fmt.Errorf("invalid export target %q: %v", target, err)
	}
	localTarget := target
	if u.Scheme == "file" {
		localTarget = u.Path
	}

	// fail fast on an existing local archive, before any temp dir is made
	if !isRemote(u) {
		if _, err := os.Stat(localTarget); err == nil {
			return fmt.Errorf("archive %s already exists, refusing to overwrite", localTarget)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot check export target %s: %v", localTarget, err)
		}
	}

	tmpdir, err := os.MkdirTemp("", "devdb-export")
	if err != nil {
		return fmt.Errorf("unable to create temporary working directory: %v", err)
	}
	defer os.RemoveAll(tmpdir)

	dumpBase := filepath.Base(cfg.DumpPath)
	in := render.Input{
		Engine:   cfg.Engine,
		User:     cfg.User,
		Password: cfg.Password,
		DumpFile: dumpBase,
		Port:     cfg.Port,
	}

	dbDir := filepath.Join(tmpdir, "db")
	if err := os.Mkdir(dbDir, 0755); err != nil {
		return fmt.Errorf("failed to create export layout: %v", err)
	}
	dockerfile, err := render.Dockerfile(in)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dbDir, "Dockerfile"), []byte(dockerfile), 0644); err != nil {
		return fmt.Errorf("failed to write build definition: %v", err)
	}
	if _, err := copyFile(cfg.DumpPath, filepath.Join(dbDir, dumpBase)); err != nil {
		return fmt.Errorf("failed to copy dump into export: %v", err)
	}

	if withCompose {
		composeText, err := render.Compose(in)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(tmpdir, "docker-compose.yaml"), []byte(composeText), 0644); err != nil {
			return fmt.Errorf("failed to write service definition: %v", err)
		}
	}

	if !isRemote(u) {
		if err := archive.Create(ctx, tmpdir, localTarget); err != nil {
			return err
		}
		log.Infof("exported %s", localTarget)
		return nil
	}

	// remote target: archive locally first, then push
	staged, err := stageRemote(ctx, tmpdir, u.Path)
	if err != nil {
		return err
	}
	defer os.RemoveAll(filepath.Dir(staged))

	store, err := storage.ForURL(u)
	if err != nil {
		return err
	}
	n, err := store.Push(cfg.Creds, *u, staged)
	if err != nil {
		return fmt.Errorf("failed to push archive to %s: %v", target, err)
	}
	log.Debugf("pushed %d bytes", n)
	log.Infof("exported %s", target)
	return nil
}

// stageRemote archives dir into a temp file named after the remote object
// so format selection still follows the extension.
func stageRemote(ctx context.Context, dir, remotePath string) (string, error) {
	stagingDir, err := os.MkdirTemp("", "devdb-stage")
	if err != nil {
		return "", fmt.Errorf("unable to create staging directory: %v", err)
	}
	staged := filepath.Join(stagingDir, filepath.Base(remotePath))
	if err := archive.Create(ctx, dir, staged); err != nil {
		os.RemoveAll(stagingDir)
		return "", err
	}
	return staged, nil
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
	return io.Copy(dst, src)
}
