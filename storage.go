package vgraph

// StorageKey addresses one value kept for a node. Name lets a node keep
// several independent values (scroll offset, cursor, ...).
type StorageKey struct {
	Node NodeID
	Name string
}

// NodeStorage keeps per-node values across rebuilds. Nodes are recreated on
// every construction pass but their ids are stable, so state keyed by id
// survives. Nothing is evicted automatically: call RemoveNode when an id is
// retired for good.
//
// NodeStorage is not safe for concurrent use.
type NodeStorage struct {
	values map[StorageKey]any
}

// NewNodeStorage creates an empty store.
func NewNodeStorage() *NodeStorage {
	return &NodeStorage{values: make(map[StorageKey]any)}
}

// Value returns the stored value and whether one exists.
func (s *NodeStorage) Value(key StorageKey) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// SetValue stores v under key.
func (s *NodeStorage) SetValue(key StorageKey, v any) {
	s.values[key] = v
}

// RemoveValue deletes one value.
func (s *NodeStorage) RemoveValue(key StorageKey) {
	delete(s.values, key)
}

// RemoveNode deletes every value kept for id.
func (s *NodeStorage) RemoveNode(id NodeID) {
	for k := range s.values {
		if k.Node == id {
			delete(s.values, k)
		}
	}
}

// Clear deletes everything.
func (s *NodeStorage) Clear() {
	clear(s.values)
}

// Len returns the number of stored values.
func (s *NodeStorage) Len() int {
	return len(s.values)
}

// GetValue returns the value under key if it exists and has type T.
// Otherwise def is stored and returned; a value of the wrong type counts as
// absent and is replaced.
func GetValue[T any](s *NodeStorage, key StorageKey, def T) T {
	return GetValueFunc(s, key, func() T { return def })
}

// GetValueFunc is GetValue with a lazily computed default.
func GetValueFunc[T any](s *NodeStorage, key StorageKey, def func() T) T {
	if v, ok := s.values[key]; ok {
		if t, ok := v.(T); ok {
			return t
		}
	}
	t := def()
	s.values[key] = t
	return t
}
