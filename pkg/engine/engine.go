// Package engine holds the closed set of database engines devdb can run,
// each carrying the image, port, credential wiring and health probe that
// the rendered build context needs.
package engine

import (
	"fmt"
	"sort"
	"strings"
)

type Engine struct {
	// Name is the engine identifier used in flags, container names and
	// dump-file detection ("mysql", "mariadb", "postgres").
	Name string
	// Image is the base image the Dockerfile builds from.
	Image string
	// Port is the port the server listens on inside the container.
	Port int
	// SeedDir is where the image's entrypoint picks up init scripts.
	SeedDir string

	envFor    func(user, pass string) []EnvVar
	healthFor func(user, pass string) string
}

// EnvVar is a single KEY=value pair rendered into the build definition.
// Order matters for deterministic rendering, so this is a slice element,
// not a map entry.
type EnvVar struct {
	Key   string
	Value string
}

// Env returns the credential environment for the engine, in render order.
func (e Engine) Env(user, pass string) []EnvVar {
	return e.envFor(user, pass)
}

// HealthCmd returns the shell command the container healthcheck runs.
func (e Engine) HealthCmd(user, pass string) string {
	return e.healthFor(user, pass)
}

// ContainerName returns the conventional container/image name for the engine.
func (e Engine) ContainerName() string {
	return "devdb_" + e.Name
}

func (e Engine) String() string {
	return e.Name
}

var (
	MySQL = Engine{
		Name:    "mysql",
		Image:   "mysql",
		Port:    3306,
		SeedDir: "/docker-entrypoint-initdb.d",
		envFor:  mysqlEnv,
		healthFor: func(user, pass string) string {
			return fmt.Sprintf("mysqladmin ping -h localhost -u %s -p%s", user, pass)
		},
	}

	MariaDB = Engine{
		Name:    "mariadb",
		Image:   "mariadb",
		Port:    3306,
		SeedDir: "/docker-entrypoint-initdb.d",
		envFor:  mysqlEnv,
		healthFor: func(user, pass string) string {
			return "healthcheck.sh --connect --innodb_initialized"
		},
	}

	Postgres = Engine{
		Name:    "postgres",
		Image:   "postgres",
		Port:    5432,
		SeedDir: "/docker-entrypoint-initdb.d",
		envFor: func(user, pass string) []EnvVar {
			return []EnvVar{
				{"POSTGRES_USER", user},
				{"POSTGRES_PASSWORD", pass},
				{"POSTGRES_DB", user},
			}
		},
		healthFor: func(user, pass string) string {
			return fmt.Sprintf("pg_isready -U %s", user)
		},
	}
)

func mysqlEnv(user, pass string) []EnvVar {
	return []EnvVar{
		{"MYSQL_ROOT_PASSWORD", pass},
		{"MYSQL_DATABASE", user},
		{"MYSQL_USER", user},
		{"MYSQL_PASSWORD", pass},
	}
}

// detection order doubles as keyword priority: a dump mentioning both
// "MySQL" and "MariaDB" resolves to mysql.
var supported = []Engine{MySQL, MariaDB, Postgres}

// Lookup validates an explicitly supplied engine name.
func Lookup(name string) (Engine, error) {
	for _, e := range supported {
		if strings.EqualFold(name, e.Name) {
			return e, nil
		}
	}
	return Engine{}, fmt.Errorf("unsupported engine %q, supported: %s", name, strings.Join(Names(), ", "))
}

// Names lists the supported engine names, sorted.
func Names() []string {
	names := make([]string, 0, len(supported))
	for _, e := range supported {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}
