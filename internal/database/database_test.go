package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAllModelsMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(AllModels()...)
	require.NoError(t, err)

	for _, table := range []string{"users", "profiles", "experiences", "educations", "posts", "likes", "comments"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}
