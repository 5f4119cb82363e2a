package ecs

// Each2 iterates over entities that have both component A and B.
// It iterates over the smaller store and checks the larger one.
func Each2[A, B any](sa Store[A], sb Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		sa.Each(func(id EntityID, a *A) {
			if b, ok := sb.Get(id); ok {
				fn(id, a, b)
			}
		})
		return
	}
	sb.Each(func(id EntityID, b *B) {
		if a, ok := sa.Get(id); ok {
			fn(id, a, b)
		}
	})
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa Store[A], sb Store[B], sc Store[C], fn func(EntityID, *A, *B, *C)) {
	// Iterate the smallest store
	smallest := sa.Len()
	which := 0
	if sb.Len() < smallest {
		smallest = sb.Len()
		which = 1
	}
	if sc.Len() < smallest {
		which = 2
	}

	switch which {
	case 0:
		sa.Each(func(id EntityID, a *A) {
			if b, ok := sb.Get(id); ok {
				if c, ok := sc.Get(id); ok {
					fn(id, a, b, c)
				}
			}
		})
	case 1:
		sb.Each(func(id EntityID, b *B) {
			if a, ok := sa.Get(id); ok {
				if c, ok := sc.Get(id); ok {
					fn(id, a, b, c)
				}
			}
		})
	case 2:
		sc.Each(func(id EntityID, c *C) {
			if a, ok := sa.Get(id); ok {
				if b, ok := sb.Get(id); ok {
					fn(id, a, b, c)
				}
			}
		})
	}
}

// Each4 iterates over entities that have components A, B, C and D, driven
// by store A. Put the most selective store first.
func Each4[A, B, C, D any](sa Store[A], sb Store[B], sc Store[C], sd Store[D], fn func(EntityID, *A, *B, *C, *D)) {
	sa.Each(func(id EntityID, a *A) {
		b, ok := sb.Get(id)
		if !ok {
			return
		}
		c, ok := sc.Get(id)
		if !ok {
			return
		}
		d, ok := sd.Get(id)
		if !ok {
			return
		}
		fn(id, a, b, c, d)
	})
}
