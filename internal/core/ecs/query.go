package ecs

// Each2 iterates over entities that have both component A and B.
// It walks the smaller store and probes the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i := range sa.data {
			id := sa.owners[i]
			if b, ok := sb.Get(id); ok {
				fn(id, &sa.data[i], b)
			}
		}
		return
	}
	for i := range sb.data {
		id := sb.owners[i]
		if a, ok := sa.Get(id); ok {
			fn(id, a, &sb.data[i])
		}
	}
}

// Each3 iterates over entities that have components A, B, and C, walking A
// and probing the other two.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	for i := range sa.data {
		id := sa.owners[i]
		b, ok := sb.Get(id)
		if !ok {
			continue
		}
		if c, ok := sc.Get(id); ok {
			fn(id, &sa.data[i], b, c)
		}
	}
}
