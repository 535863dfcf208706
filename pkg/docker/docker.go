// Package docker drives the external container engine. Every operation is
// an argv handed to a run.Runner; nothing here links against the daemon.
package docker

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/go-connections/nat"

	"github.com/databacker/devdb/pkg/run"
)

// Healthy is the status string reported by the engine once the container's
// healthcheck passes.
const Healthy = "healthy"

type Client struct {
	runner run.Runner
}

func New(runner run.Runner) *Client {
	return &Client{runner: runner}
}

// Available reports whether the container engine can be reached at all.
func (c *Client) Available(ctx context.Context) error {
	res := c.runner.Run(ctx, "docker", "version", "--format", "{{.Server.Version}}")
	if !res.Ok() {
		return fmt.Errorf("container engine not available: %w", res.Err())
	}
	return nil
}

// Pull fetches the base image for the engine.
func (c *Client) Pull(ctx context.Context, image string) error {
	res := c.runner.Run(ctx, "docker", "pull", image)
	if !res.Ok() {
		return fmt.Errorf("failed to pull base image %s: %w", image, res.Err())
	}
	return nil
}

// Build builds the image from the given context directory under the tag.
func (c *Client) Build(ctx context.Context, dir, tag string) error {
	res := c.runner.Run(ctx, "docker", "build", "-t", tag, dir)
	if !res.Ok() {
		return fmt.Errorf("failed to build image %s: %w", tag, res.Err())
	}
	return nil
}

// Exists reports whether a container with the given name exists, running
// or not.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	res := c.runner.Run(ctx, "docker", "ps", "-a", "--filter", "name=^"+name+"$", "--format", "{{.Names}}")
	if !res.Ok() {
		return false, fmt.Errorf("failed to list containers: %w", res.Err())
	}
	for _, line := range strings.Split(res.Output, "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// Remove force-removes the named container.
func (c *Client) Remove(ctx context.Context, name string) error {
	res := c.runner.Run(ctx, "docker", "rm", "-f", name)
	if !res.Ok() {
		return fmt.Errorf("failed to remove container %s: %w", name, res.Err())
	}
	return nil
}

// RunDetached starts a container from the tag, publishing external onto
// the engine's internal port. The container always starts detached; log
// attachment is a separate step so health polling can happen in between.
func (c *Client) RunDetached(ctx context.Context, name, tag string, external, internal int) error {
	port, err := nat.NewPort("tcp", strconv.Itoa(internal))
	if err != nil {
		return fmt.Errorf("invalid internal port %d: %w", internal, err)
	}
	publish := fmt.Sprintf("%d:%s", external, port.Port())
	res := c.runner.Run(ctx, "docker", "run", "-d", "--name", name, "-p", publish, tag)
	if !res.Ok() {
		return fmt.Errorf("failed to run container %s: %w", name, res.Err())
	}
	return nil
}

// Health returns the container's health status string ("starting",
// "healthy", "unhealthy").
func (c *Client) Health(ctx context.Context, name string) (string, error) {
	res := c.runner.Run(ctx, "docker", "inspect", "--format", "{{.State.Health.Status}}", name)
	if !res.Ok() {
		return "", fmt.Errorf("failed to inspect container %s: %w", name, res.Err())
	}
	return strings.TrimSpace(res.Output), nil
}

// FollowLogs streams container logs to the terminal until the context is
// cancelled or the stream is interrupted.
func (c *Client) FollowLogs(ctx context.Context, name string) error {
	res := c.runner.Stream(ctx, "docker", "logs", "-f", name)
	if !res.Ok() && ctx.Err() == nil {
		return fmt.Errorf("log stream for %s ended: %w", name, res.Err())
	}
	return nil
}
