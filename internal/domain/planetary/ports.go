package planetary

import "context"

// ColonyRepository persists colony snapshots
type ColonyRepository interface {
	// FindByID returns *ColonyNotFoundError when no snapshot exists
	FindByID(ctx context.Context, colonyID int64) (*Colony, error)

	// FindByCharacter returns every colony owned by the character, ordered by ID
	FindByCharacter(ctx context.Context, characterID int32) ([]*Colony, error)

	// Save replaces the stored snapshot with the colony's current state
	Save(ctx context.Context, colony *Colony) error

	Delete(ctx context.Context, colonyID int64) error
}

// TypeCatalogRepository stores pin type capacities and commodity volumes
type TypeCatalogRepository interface {
	// Snapshot loads the whole catalog so lookups during a simulation never hit storage
	Snapshot(ctx context.Context) (*StaticCatalog, error)

	SetCapacity(ctx context.Context, typeID int32, capacity int) error
	SetVolume(ctx context.Context, typeID int32, volume float64) error
}
