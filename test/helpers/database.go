package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/colonysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory colony store, closed when t finishes
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err, "open colony test database")
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}

// NewCatalogTestDB is NewTestDB with the item types of FixtureCatalog stored,
// so status queries over fixture colonies see real capacities and volumes.
func NewCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewTestDB(t)
	catalog := persistence.NewGormTypeCatalog(db)
	ctx := context.Background()

	for typeID, capacity := range map[int32]int{
		StorageTypeID:       12000,
		LaunchpadTypeID:     10000,
		CommandCenterTypeID: 500,
	} {
		require.NoError(t, catalog.SetCapacity(ctx, typeID, capacity))
	}
	for typeID, volume := range map[int32]float64{
		AqueousLiquidsTypeID: 0.01,
		WaterTypeID:          0.38,
	} {
		require.NoError(t, catalog.SetVolume(ctx, typeID, volume))
	}

	return db
}
