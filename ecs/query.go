package ecs

// intersect returns the ids present in both sets, iterating the smaller.
func intersect(a, b *SparseSet) []entityID {
	if a == nil || b == nil {
		return nil
	}
	if a.Len() > b.Len() {
		a, b = b, a
	}
	out := make([]entityID, 0, a.Len())
	for _, id := range a.dense {
		if b.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
