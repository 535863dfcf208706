package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, tt := range []struct {
		name    string
		want    Engine
		wantErr bool
	}{
		{name: "mysql", want: MySQL},
		{name: "MySQL", want: MySQL},
		{name: "mariadb", want: MariaDB},
		{name: "postgres", want: Postgres},
		{name: "oracle", wantErr: true},
		{name: "", wantErr: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported engine")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Name, got.Name)
		})
	}
}

func TestEngineDefaults(t *testing.T) {
	assert.Equal(t, 3306, MySQL.Port)
	assert.Equal(t, 3306, MariaDB.Port)
	assert.Equal(t, 5432, Postgres.Port)

	assert.Equal(t, "devdb_mysql", MySQL.ContainerName())
	assert.Equal(t, "devdb_mariadb", MariaDB.ContainerName())
	assert.Equal(t, "devdb_postgres", Postgres.ContainerName())
}

func TestEnv(t *testing.T) {
	env := MySQL.Env("alice", "secret")
	assert.Equal(t, []EnvVar{
		{"MYSQL_ROOT_PASSWORD", "secret"},
		{"MYSQL_DATABASE", "alice"},
		{"MYSQL_USER", "alice"},
		{"MYSQL_PASSWORD", "secret"},
	}, env)

	env = Postgres.Env("alice", "secret")
	assert.Equal(t, []EnvVar{
		{"POSTGRES_USER", "alice"},
		{"POSTGRES_PASSWORD", "secret"},
		{"POSTGRES_DB", "alice"},
	}, env)
}

func TestHealthCmd(t *testing.T) {
	assert.Contains(t, MySQL.HealthCmd("alice", "secret"), "mysqladmin ping")
	assert.Contains(t, MariaDB.HealthCmd("alice", "secret"), "healthcheck.sh")
	assert.Equal(t, "pg_isready -U alice", Postgres.HealthCmd("alice", "secret"))
}
