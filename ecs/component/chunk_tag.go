package component

// ChunkTag records which generated chunk spawned an entity.
type ChunkTag struct {
	Index int
}

var ChunkTagComponent = NewComponent[ChunkTag]()
