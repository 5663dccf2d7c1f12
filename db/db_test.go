package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestStoreAndListAuditRecords(t *testing.T) {
	database := newTestDB(t)

	for i := 0; i < 5; i++ {
		err := database.StoreAuditRecord(models.QueryAuditRecord{
			ID:       fmt.Sprintf("id-%d", i),
			Question: fmt.Sprintf("問題 %d", i),
			Status:   "ok",
		})
		require.NoError(t, err)
	}

	records, err := database.ListAuditRecords(10)
	require.NoError(t, err)
	require.Len(t, records, 5)

	// Most recent first.
	assert.Equal(t, "id-4", records[0].ID)
	assert.Equal(t, "id-0", records[4].ID)
}

func TestListAuditRecords_Limit(t *testing.T) {
	database := newTestDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, database.StoreAuditRecord(models.QueryAuditRecord{
			ID: fmt.Sprintf("id-%d", i),
		}))
	}

	records, err := database.ListAuditRecords(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "id-4", records[0].ID)
	assert.Equal(t, "id-3", records[1].ID)
}

func TestListAuditRecords_Empty(t *testing.T) {
	database := newTestDB(t)

	records, err := database.ListAuditRecords(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
