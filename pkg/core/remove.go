package core

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/databacker/devdb/pkg/docker"
)

// Remove tears down a named container. A name that does not exist is not
// an error; there is simply nothing to do.
func Remove(ctx context.Context, cli *docker.Client, name string) error {
	if err := cli.Available(ctx); err != nil {
		return err
	}
	exists, err := cli.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		log.Infof("no container named %s, nothing to do", name)
		return nil
	}
	if err := cli.Remove(ctx, name); err != nil {
		return err
	}
	log.Infof("removed %s", name)
	return nil
}
