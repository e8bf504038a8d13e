// Package props provides shallow, non-mutating projection helpers for
// record maps. They back the response shaping (basic/full game, user
// without password) performed by the usecase layer.
package props

// Omit returns a shallow copy of record with the named keys removed.
// The input map is never mutated.
func Omit[V any](record map[string]V, keys ...string) map[string]V {
	cloned := make(map[string]V, len(record))
	for k, v := range record {
		cloned[k] = v
	}
	for _, key := range keys {
		delete(cloned, key)
	}
	return cloned
}

// Pick returns a shallow copy of record retaining only the named keys.
// Keys absent from record are ignored. The input map is never mutated.
func Pick[V any](record map[string]V, keys ...string) map[string]V {
	cloned := make(map[string]V, len(keys))
	for _, key := range keys {
		if v, ok := record[key]; ok {
			cloned[key] = v
		}
	}
	return cloned
}
