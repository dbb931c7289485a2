package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbeddedAndAnnotated(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		b, err := fs.ReadFile(Migrations, f)
		require.NoError(t, err)
		assert.Contains(t, string(b), "-- +goose Up", f)
		assert.Contains(t, string(b), "-- +goose Down", f)
	}
}

func TestMigrations_UsersEmailIsUnique(t *testing.T) {
	b, err := fs.ReadFile(Migrations, "00001_create_users.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "UNIQUE (email)"))
}
