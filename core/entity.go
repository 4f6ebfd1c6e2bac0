package core

// Entity is an opaque identity that components attach to
// Zero is reserved as the invalid entity
type Entity uint64

// InvalidEntity is never returned by World.CreateEntity
const InvalidEntity Entity = 0

// Valid reports whether e refers to an allocated entity
func (e Entity) Valid() bool {
	return e != InvalidEntity
}
