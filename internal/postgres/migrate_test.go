package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpMigrationsOrdered(t *testing.T) {
	ups, err := upMigrations()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.up.sql", "0002_seed.up.sql"}, ups)
}

func TestSeedMigrationOnlyFillsEmptyCatalog(t *testing.T) {
	b, err := migrationsFS.ReadFile("migrations/0002_seed.up.sql")
	require.NoError(t, err)

	sql := string(b)
	assert.Contains(t, sql, "WHERE NOT EXISTS (SELECT 1 FROM products)")
	assert.Contains(t, sql, "Rose Bouquet Premium")
	assert.Equal(t, 12, strings.Count(sql, "Flower',"), "dua belas produk contoh")
}
