package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/databacker/devdb/pkg/engine"
)

// Connection describes how to reach the seeded database from the host.
type Connection struct {
	Engine engine.Engine
	User   string
	Pass   string
	Host   string
	Port   int
}

// DSN returns the connection string a client of the engine would use.
func (c Connection) DSN() string {
	switch c.Engine.Name {
	case engine.Postgres.Name:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Pass),
			Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:   "/" + c.User,
		}
		q := u.Query()
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
		return u.String()
	default:
		cfg := mysqldriver.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Pass
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		cfg.DBName = c.User
		return cfg.FormatDSN()
	}
}

// Ping opens a real client connection and verifies the server answers.
// Only the mysql family has a driver wired in; postgres readiness is
// already covered by its pg_isready healthcheck, so Ping is a no-op there.
func (c Connection) Ping(ctx context.Context) error {
	if c.Engine.Name == engine.Postgres.Name {
		return nil
	}
	db, err := sql.Open("mysql", c.DSN())
	if err != nil {
		return fmt.Errorf("failed to open connection to database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database did not answer: %v", err)
	}
	return nil
}
