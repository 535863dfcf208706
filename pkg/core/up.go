package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/databacker/devdb/pkg/database"
	"github.com/databacker/devdb/pkg/docker"
	"github.com/databacker/devdb/pkg/render"
	"github.com/databacker/devdb/pkg/retry"
)

const (
	healthAttempts = 12
	healthInterval = 5 * time.Second
)

// Lifecycle runs the build-run-wait-report-teardown flow against the
// container engine.
type Lifecycle struct {
	Docker *docker.Client
	// Health is the polling budget for the container healthcheck.
	// The zero value gets the 12 x 5s default.
	Health retry.Policy
}

func NewLifecycle(cli *docker.Client) *Lifecycle {
	return &Lifecycle{
		Docker: cli,
		Health: retry.Policy{Attempts: healthAttempts, Interval: healthInterval},
	}
}

// Up takes a resolved config all the way to a ready database: pull the
// base image, build the seeded image, replace any pre-existing container
// (force-gated), run it, poll health, report connection info. When not
// detached it then follows logs until interrupted and always attempts a
// final teardown.
func (l *Lifecycle) Up(ctx context.Context, cfg Config) error {
	if err := l.Docker.Available(ctx); err != nil {
		return err
	}

	name := cfg.Name()
	log.Infof("preparing %s container %s", cfg.Engine, name)

	if err := l.Docker.Pull(ctx, cfg.Engine.Image); err != nil {
		return err
	}

	exists, err := l.Docker.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		if !cfg.Force {
			return fmt.Errorf("container %s already exists; pass --force to replace it", name)
		}
		if err := l.Docker.Remove(ctx, name); err != nil {
			log.Warnf("could not remove existing container %s: %v", name, err)
		}
	}

	dir, err := buildContext(cfg)
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if err := l.Docker.Build(ctx, dir, name); err != nil {
		return err
	}

	if err := l.Docker.RunDetached(ctx, name, name, cfg.Port, cfg.Engine.Port); err != nil {
		return err
	}

	log.Infof("waiting for %s to become healthy", name)
	policy := l.Health
	if policy.Attempts == 0 {
		policy = retry.Policy{Attempts: healthAttempts, Interval: healthInterval}
	}
	err = policy.Do(ctx, func(ctx context.Context) (bool, error) {
		status, err := l.Docker.Health(ctx, name)
		if err != nil {
			return false, err
		}
		log.Debugf("health status: %s", status)
		return status == docker.Healthy, nil
	})
	if err != nil {
		var exhausted *retry.ErrExhausted
		if errors.As(err, &exhausted) {
			return fmt.Errorf("container %s did not become healthy within %d attempts", name, exhausted.Attempts)
		}
		return err
	}

	l.report(ctx, cfg)

	if cfg.Detached {
		log.Infof("running detached; remove with: devdb rm %s", name)
		return nil
	}

	log.Info("attached; press Ctrl-C to stop and remove the container")
	streamCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	err = l.Docker.FollowLogs(streamCtx, name)
	stop()
	if err != nil {
		log.Warnf("log streaming ended: %v", err)
	}

	// teardown always runs once the attached stream ends, however it ended
	log.Infof("removing container %s", name)
	if err := l.Docker.Remove(context.Background(), name); err != nil {
		return err
	}
	return nil
}

func (l *Lifecycle) report(ctx context.Context, cfg Config) {
	conn := database.Connection{
		Engine: cfg.Engine,
		User:   cfg.User,
		Pass:   cfg.Password,
		Host:   "127.0.0.1",
		Port:   cfg.Port,
	}
	if err := conn.Ping(ctx); err != nil {
		log.Warnf("container is healthy but the server did not answer a client ping: %v", err)
	}
	log.Infof("database ready")
	log.Infof("  engine:   %s", cfg.Engine)
	log.Infof("  name:     %s", cfg.Name())
	log.Infof("  port:     %d -> %d", cfg.Port, cfg.Engine.Port)
	log.Infof("  user:     %s", cfg.User)
	log.Infof("  password: %s", cfg.Password)
	log.Infof("  dsn:      %s", conn.DSN())
}

// buildContext writes the rendered Dockerfile and a copy of the dump into
// a fresh temp directory the image build can consume.
func buildContext(cfg Config) (string, error) {
	dir, err := os.MkdirTemp("", "devdb-build")
	if err != nil {
		return "", fmt.Errorf("unable to create temporary working directory: %v", err)
	}

	dumpBase := filepath.Base(cfg.DumpPath)
	dockerfile, err := render.Dockerfile(render.Input{
		Engine:   cfg.Engine,
		User:     cfg.User,
		Password: cfg.Password,
		DumpFile: dumpBase,
		Port:     cfg.Port,
	})
	if err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte(dockerfile), 0644); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("failed to write build definition: %v", err)
	}
	if _, err := copyFile(cfg.DumpPath, filepath.Join(dir, dumpBase)); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("failed to copy dump into build context: %v", err)
	}
	return dir, nil
}
