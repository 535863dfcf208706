package core

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/databacker/devdb/pkg/engine"
	"github.com/databacker/devdb/pkg/storage"
	"github.com/databacker/devdb/pkg/storage/credentials"
)

const (
	// DefaultUser doubles as default password and database name, matching
	// the rendered credential environment.
	DefaultUser = "devdb"
	DefaultPass = "devdb"
)

// Options is the raw flag surface as parsed by the CLI.
type Options struct {
	// DumpTarget is the positional argument: a local path or a
	// file://, s3:// or smb:// URL.
	DumpTarget string
	// BaseEngine is the explicitly requested engine; empty means detect.
	BaseEngine string
	// Port is the externally published port; 0 means the engine default.
	Port      int
	User      string
	Password  string
	Force     bool
	Detached  bool
	ToDocker  string
	ToCompose string
	Creds     credentials.Creds
}

// Config is the resolved, immutable per-invocation record everything
// downstream consumes.
type Config struct {
	Engine   engine.Engine
	Port     int
	User     string
	Password string
	// DumpPath is a local path; remote dump targets have already been
	// pulled by the time a Config exists.
	DumpPath  string
	Force     bool
	Detached  bool
	ToDocker  string
	ToCompose string
	Creds     credentials.Creds
}

// ExportRequested reports whether either export target was given.
func (c Config) ExportRequested() bool {
	return c.ToDocker != "" || c.ToCompose != ""
}

// Name returns the conventional container/image name.
func (c Config) Name() string {
	return c.Engine.ContainerName()
}

// Resolve turns Options into a Config: pulls a remote dump target to a
// local temp file if needed, detects or validates the engine, and fills
// in defaults. The returned cleanup removes any pulled temp file and is
// safe to call always.
func Resolve(opts Options) (Config, func(), error) {
	cleanup := func() {}

	if opts.ToDocker != "" && opts.ToCompose != "" {
		return Config{}, cleanup, fmt.Errorf("--to-docker and --to-compose are mutually exclusive")
	}

	u, err := smartParse(opts.DumpTarget)
	if err != nil {
		return Config{}, cleanup, fmt.Errorf("invalid dump target %q: %v", opts.DumpTarget, err)
	}

	dumpPath := opts.DumpTarget
	if u.Scheme == "file" {
		dumpPath = u.Path
	}
	if isRemote(u) {
		store, err := storage.ForURL(u)
		if err != nil {
			return Config{}, cleanup, err
		}
		tmp, err := os.CreateTemp("", "devdb-dump-*"+filepath.Ext(u.Path))
		if err != nil {
			return Config{}, cleanup, fmt.Errorf("unable to create temporary dump file: %v", err)
		}
		tmp.Close()
		cleanup = func() { _ = os.Remove(tmp.Name()) }
		log.Infof("pulling dump from %s", opts.DumpTarget)
		n, err := store.Pull(opts.Creds, *u, tmp.Name())
		if err != nil {
			return Config{}, cleanup, fmt.Errorf("failed to pull dump %s: %v", opts.DumpTarget, err)
		}
		log.Debugf("pulled %d bytes", n)
		dumpPath = tmp.Name()
	}

	if _, err := os.Stat(dumpPath); err != nil {
		return Config{}, cleanup, fmt.Errorf("cannot read dump file %s: %v", dumpPath, err)
	}

	var eng engine.Engine
	if opts.BaseEngine != "" {
		eng, err = engine.Lookup(opts.BaseEngine)
	} else {
		eng, err = engine.Detect(dumpPath)
	}
	if err != nil {
		return Config{}, cleanup, err
	}

	cfg := Config{
		Engine:    eng,
		Port:      opts.Port,
		User:      opts.User,
		Password:  opts.Password,
		DumpPath:  dumpPath,
		Force:     opts.Force,
		Detached:  opts.Detached,
		ToDocker:  opts.ToDocker,
		ToCompose: opts.ToCompose,
		Creds:     opts.Creds,
	}
	if cfg.Port == 0 {
		cfg.Port = eng.Port
	}
	if cfg.User == "" {
		cfg.User = DefaultUser
	}
	if cfg.Password == "" {
		cfg.Password = DefaultPass
	}
	return cfg, cleanup, nil
}
