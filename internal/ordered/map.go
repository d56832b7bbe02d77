// Package ordered provides a map that remembers the order in which its keys
// were first set.
package ordered

// Map associates keys with values and iterates them in insertion order.
// Setting a key that is already present replaces the value but keeps the key
// in its original position.
//
// The zero value is an empty map ready to use.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// Set stores v under k.
func (m *Map[K, V]) Set(k K, v V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, found := m.values[k]; !found {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value stored under k and whether it was found.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, found := m.values[k]
	return v, found
}

// Delete removes k. It is a no-op if k is not present.
func (m *Map[K, V]) Delete(k K) {
	if _, found := m.values[k]; !found {
		return
	}
	delete(m.values, k)
	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	ks := make([]K, len(m.keys))
	copy(ks, m.keys)
	return ks
}

// Each calls fn for every entry in insertion order until fn returns false.
func (m *Map[K, V]) Each(fn func(k K, v V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}
