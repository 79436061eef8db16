package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/kbenedict/customer-orders/pkg/pg"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// setupTestDB opens an isolated in-memory sqlite database with foreign
// keys enforced, matching the constraints the postgres migrations create.
func setupTestDB(t *testing.T) *pg.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&CustomerEntity{}, &OrderEntity{})
	require.NoError(t, err)

	return pg.New(db)
}
