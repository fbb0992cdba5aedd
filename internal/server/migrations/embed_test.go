package migrations

import (
	"io/fs"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	assert.Equal(t, "00001_create_users.sql", files[0])
}

func TestUsersMigration_DeclaresUniqueCredentials(t *testing.T) {
	b, err := fs.ReadFile(Migrations, "00001_create_users.sql")
	require.NoError(t, err)

	sql := string(b)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.True(t, strings.Contains(sql, "UNIQUE (email)"))
	assert.True(t, strings.Contains(sql, "UNIQUE (biometric_key)"))
}
