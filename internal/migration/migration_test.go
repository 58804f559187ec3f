package migration

import (
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/smallbiznis/hynox/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestMigrateCreatesTablesOnSQLite(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	require.NoError(t, Migrate(conn))
	require.NoError(t, Migrate(conn))

	for _, table := range []string{"clients", "services", "invoices", "quotations", "admins", "company_info", "settings"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(embeddedMigrations, migrationsDir+"/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(embeddedMigrations, migrationsDir+"/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

// MySQL rejects a literal DEFAULT on TEXT and BLOB columns.
func TestModelDefaultsAvoidTextColumns(t *testing.T) {
	cache := &sync.Map{}
	for _, model := range Models() {
		parsed, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err)
		for _, field := range parsed.Fields {
			if field.DefaultValue == "" {
				continue
			}
			kind := strings.ToLower(string(field.DataType))
			assert.NotContains(t, []string{"text", "blob"}, kind, "%s.%s", parsed.Table, field.DBName)
		}
	}
}
