package xpbd

// broadphasePair is a pair of object indices whose AABBs overlap and are
// therefore worth narrow-phasing.
type broadphasePair struct {
	obj1, obj2 int
}

// collectObjectPairs runs the quadratic object-AABB pass (spec.md 4.E):
// every pair of distinct objects whose AABBs overlap is a candidate;
// self-collision within one object's own tetrahedra is never considered.
func collectObjectPairs(objects []*TetraObject) []broadphasePair {
	var pairs []broadphasePair
	for i := 0; i < len(objects); i++ {
		for j := i + 1; j < len(objects); j++ {
			if !objects[i].aabb.Intersects(objects[j].aabb) {
				continue
			}
			pairs = append(pairs, broadphasePair{i, j})
		}
	}
	return pairs
}

// tetraPair is a pair of tetrahedron indices, one from each object of a
// surviving broadphasePair, whose AABBs also overlap.
type tetraPair struct {
	t1, t2 int
}

// collectTetraPairs runs the inner O(T^2) tetra-AABB pruning pass for one
// object pair (spec.md 4.E).
func collectTetraPairs(obj1, obj2 *TetraObject) []tetraPair {
	var pairs []tetraPair
	for t1i := range obj1.Tetras {
		for t2i := range obj2.Tetras {
			if !obj1.Tetras[t1i].aabb.Intersects(obj2.Tetras[t2i].aabb) {
				continue
			}
			pairs = append(pairs, tetraPair{t1i, t2i})
		}
	}
	return pairs
}
