package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databacker/devdb/pkg/engine"
)

func writeDump(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveDefaults(t *testing.T) {
	dump := writeDump(t, "dump.sql", "-- MySQL dump 10.13\nCREATE TABLE t (id int);\n")

	cfg, cleanup, err := Resolve(Options{DumpTarget: dump})
	defer cleanup()
	require.NoError(t, err)

	assert.Equal(t, engine.MySQL.Name, cfg.Engine.Name)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "devdb", cfg.User)
	assert.Equal(t, "devdb", cfg.Password)
	assert.Equal(t, "devdb_mysql", cfg.Name())
	assert.Equal(t, dump, cfg.DumpPath)
	assert.False(t, cfg.ExportRequested())
}

func TestResolveExplicitEngine(t *testing.T) {
	// no keyword in the dump at all
	dump := writeDump(t, "dump.sql", "CREATE TABLE t (id int);\n")

	_, cleanup, err := Resolve(Options{DumpTarget: dump})
	cleanup()
	require.Error(t, err, "detection failure without --base must be fatal")

	cfg, cleanup, err := Resolve(Options{DumpTarget: dump, BaseEngine: "postgres"})
	defer cleanup()
	require.NoError(t, err)
	assert.Equal(t, engine.Postgres.Name, cfg.Engine.Name)
	assert.Equal(t, 5432, cfg.Port)
}

func TestResolveRejectsUnsupportedEngine(t *testing.T) {
	dump := writeDump(t, "dump.sql", "-- MySQL dump\n")

	_, cleanup, err := Resolve(Options{DumpTarget: dump, BaseEngine: "mssql"})
	defer cleanup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported engine")
}

func TestResolveOverrides(t *testing.T) {
	dump := writeDump(t, "dump.sql", "-- PostgreSQL database dump\n")

	cfg, cleanup, err := Resolve(Options{
		DumpTarget: dump,
		Port:       15432,
		User:       "alice",
		Password:   "s3cret",
		Force:      true,
		Detached:   true,
	})
	defer cleanup()
	require.NoError(t, err)
	assert.Equal(t, 15432, cfg.Port)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "s3cret", cfg.Password)
	assert.True(t, cfg.Force)
	assert.True(t, cfg.Detached)
}

func TestResolveFileURL(t *testing.T) {
	dump := writeDump(t, "dump.sql", "-- MariaDB dump\n")

	cfg, cleanup, err := Resolve(Options{DumpTarget: "file://" + dump})
	defer cleanup()
	require.NoError(t, err)
	assert.Equal(t, engine.MariaDB.Name, cfg.Engine.Name)
	assert.Equal(t, dump, cfg.DumpPath)
}

func TestResolveMissingDump(t *testing.T) {
	_, cleanup, err := Resolve(Options{DumpTarget: filepath.Join(t.TempDir(), "nope.sql")})
	defer cleanup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read dump file")
}

func TestResolveMutuallyExclusiveExports(t *testing.T) {
	dump := writeDump(t, "dump.sql", "-- MySQL dump\n")

	_, cleanup, err := Resolve(Options{
		DumpTarget: dump,
		ToDocker:   "a.zip",
		ToCompose:  "b.zip",
	})
	defer cleanup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestSmartParse(t *testing.T) {
	u, err := smartParse("/tmp/dump.sql")
	require.NoError(t, err)
	assert.Equal(t, "file", u.Scheme)
	assert.Equal(t, "/tmp/dump.sql", u.Path)
	assert.False(t, isRemote(u))

	u, err = smartParse("s3://bucket/dump.sql")
	require.NoError(t, err)
	assert.True(t, isRemote(u))

	u, err = smartParse("smb://host/share/dump.sql")
	require.NoError(t, err)
	assert.True(t, isRemote(u))

	u, err = smartParse("dump.sql")
	require.NoError(t, err)
	assert.False(t, isRemote(u))
}
