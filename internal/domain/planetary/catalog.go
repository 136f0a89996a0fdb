package planetary

// CapacityLookup resolves the storage capacity (m3) of a pin type.
// A miss means the capacity is unknown, which is not an error.
type CapacityLookup interface {
	CapacityFor(typeID int32) (int, bool)
}

// VolumeLookup resolves the unit volume (m3) of a commodity type
type VolumeLookup interface {
	VolumeFor(typeID int32) (float64, bool)
}

// Catalog is the read-only type data the simulation consumes
type Catalog interface {
	CapacityLookup
	VolumeLookup
}

// StaticCatalog is an in-memory Catalog
type StaticCatalog struct {
	Capacities map[int32]int
	Volumes    map[int32]float64
}

// NewStaticCatalog creates an empty in-memory catalog
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		Capacities: make(map[int32]int),
		Volumes:    make(map[int32]float64),
	}
}

// WithCapacity registers a pin type capacity and returns the catalog
func (c *StaticCatalog) WithCapacity(typeID int32, capacity int) *StaticCatalog {
	c.Capacities[typeID] = capacity
	return c
}

// WithVolume registers a commodity volume and returns the catalog
func (c *StaticCatalog) WithVolume(typeID int32, volume float64) *StaticCatalog {
	c.Volumes[typeID] = volume
	return c
}

func (c *StaticCatalog) CapacityFor(typeID int32) (int, bool) {
	capacity, ok := c.Capacities[typeID]
	return capacity, ok
}

func (c *StaticCatalog) VolumeFor(typeID int32) (float64, bool) {
	volume, ok := c.Volumes[typeID]
	return volume, ok
}
