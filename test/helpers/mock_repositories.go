package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// MockColonyRepository is an in-memory ColonyRepository that stores clones
type MockColonyRepository struct {
	mu       sync.RWMutex
	colonies map[int64]*planetary.Colony

	// Error injection
	FindErr error
	SaveErr error

	SaveCalls int
}

// NewMockColonyRepository creates an empty mock colony repository
func NewMockColonyRepository() *MockColonyRepository {
	return &MockColonyRepository{colonies: make(map[int64]*planetary.Colony)}
}

// AddColony stores a copy of the colony without counting as a Save
func (m *MockColonyRepository) AddColony(colony *planetary.Colony) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.colonies[colony.ID()] = colony.Clone()
}

// Stored returns the stored copy, bypassing error injection
func (m *MockColonyRepository) Stored(colonyID int64) (*planetary.Colony, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	colony, ok := m.colonies[colonyID]
	if !ok {
		return nil, false
	}
	return colony.Clone(), true
}

func (m *MockColonyRepository) FindByID(ctx context.Context, colonyID int64) (*planetary.Colony, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindErr != nil {
		return nil, m.FindErr
	}
	colony, ok := m.colonies[colonyID]
	if !ok {
		return nil, &planetary.ColonyNotFoundError{ColonyID: colonyID}
	}
	return colony.Clone(), nil
}

func (m *MockColonyRepository) FindByCharacter(ctx context.Context, characterID int32) ([]*planetary.Colony, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var colonies []*planetary.Colony
	for _, colony := range m.colonies {
		if colony.CharacterID() == characterID {
			colonies = append(colonies, colony.Clone())
		}
	}
	sort.Slice(colonies, func(i, j int) bool { return colonies[i].ID() < colonies[j].ID() })
	return colonies, nil
}

func (m *MockColonyRepository) Save(ctx context.Context, colony *planetary.Colony) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.colonies[colony.ID()] = colony.Clone()
	return nil
}

func (m *MockColonyRepository) Delete(ctx context.Context, colonyID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.colonies[colonyID]; !ok {
		return &planetary.ColonyNotFoundError{ColonyID: colonyID}
	}
	delete(m.colonies, colonyID)
	return nil
}

// MockTypeCatalog is an in-memory TypeCatalogRepository
type MockTypeCatalog struct {
	mu         sync.RWMutex
	capacities map[int32]int
	volumes    map[int32]float64

	SnapshotErr error
}

// NewMockTypeCatalog creates a mock catalog seeded like FixtureCatalog
func NewMockTypeCatalog() *MockTypeCatalog {
	return &MockTypeCatalog{
		capacities: map[int32]int{
			StorageTypeID:       12000,
			LaunchpadTypeID:     10000,
			CommandCenterTypeID: 500,
		},
		volumes: map[int32]float64{
			AqueousLiquidsTypeID: 0.01,
			WaterTypeID:          0.38,
		},
	}
}

func (m *MockTypeCatalog) Snapshot(ctx context.Context) (*planetary.StaticCatalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.SnapshotErr != nil {
		return nil, m.SnapshotErr
	}
	catalog := planetary.NewStaticCatalog()
	for typeID, capacity := range m.capacities {
		catalog.WithCapacity(typeID, capacity)
	}
	for typeID, volume := range m.volumes {
		catalog.WithVolume(typeID, volume)
	}
	return catalog, nil
}

func (m *MockTypeCatalog) SetCapacity(ctx context.Context, typeID int32, capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("capacity must not be negative: %d", capacity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capacities[typeID] = capacity
	return nil
}

func (m *MockTypeCatalog) SetVolume(ctx context.Context, typeID int32, volume float64) error {
	if volume <= 0 {
		return fmt.Errorf("volume must be positive: %v", volume)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumes[typeID] = volume
	return nil
}
