package xpbd

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// TetraObject owns one object's vertex arrays, its tetrahedra and derived
// edges, vertex adjacency, and the per-vertex collision slots (spec.md 3,
// 4.C). Edges/tetrahedra reference vertices by index into this object's
// arrays rather than by pointer, so the object can be copied or relocated
// freely (spec.md 9: no ownership cycles).
type TetraObject struct {
	// ID is an opaque handle stable across the object's lifetime, used for
	// log/error correlation independently of the object's slot index in a
	// Scene (which the caller may reuse as an O(1) handle per spec.md 9).
	ID string

	Positions    []Real3
	OldPositions []Real3
	Velocities   []Real3
	InvMasses    []Real

	Edges  []Edge
	Tetras []Tetrahedron

	vertexEdges  [][]Index
	vertexTetras [][]Index

	// vertexCollisions holds, per vertex, the indices into the current
	// step's Collisions slice that touch it. Cleared at the start of
	// collision collection (spec.md 5).
	vertexCollisions [][]int
	// VertexCollisionConstraints holds one collision goal slot per vertex,
	// re-seeded every step (spec.md 3).
	VertexCollisionConstraints []CollisionConstraint

	aabb AABB
}

// newTetraObject allocates the parallel per-vertex arrays for the given
// initial positions: old_positions copies positions, velocities are zero,
// inverse masses default to 1.0 (free), matching the original source's
// TetraObject(vs) constructor.
func newTetraObject(positions []Real3) *TetraObject {
	n := len(positions)
	obj := &TetraObject{
		ID:                         uuid.NewString(),
		Positions:                  append([]Real3(nil), positions...),
		OldPositions:               append([]Real3(nil), positions...),
		Velocities:                 make([]Real3, n),
		InvMasses:                  make([]Real, n),
		vertexEdges:                make([][]Index, n),
		vertexTetras:               make([][]Index, n),
		vertexCollisions:           make([][]int, n),
		VertexCollisionConstraints: make([]CollisionConstraint, n),
	}
	for i := range obj.InvMasses {
		obj.InvMasses[i] = 1.0
	}
	if n > 0 {
		obj.aabb = NewAABB(positions[0])
		for _, p := range positions[1:] {
			obj.aabb = obj.aabb.Expand(p)
		}
	}
	return obj
}

// initTetrasAndEdges validates the tetrahedra, derives unique edges from
// their vertex pairs, builds vertex->edge and vertex->tetra adjacency, and
// computes the initial AABBs (spec.md 3, 4.C, 7).
//
// Edge uniqueness and ordering follow the original source's
// std::set<pair<VertexIndex,VertexIndex>> (sorted ascending), so that
// iteration over an object's edges is deterministic across runs, which
// spec.md 5 requires.
func (obj *TetraObject) initTetrasAndEdges(tetras []Tetrahedron, edgeCompliance Compliance) error {
	n := Index(len(obj.Positions))

	for ti, t := range tetras {
		seen := map[Index]bool{}
		for _, v := range t.Vs {
			if v >= n {
				return fmt.Errorf("%w: tetrahedron %d references vertex %d, object has %d vertices", ErrInvalidGeometry, ti, v, n)
			}
			if seen[v] {
				return fmt.Errorf("%w: tetrahedron %d has duplicate vertex index %d", ErrInvalidGeometry, ti, v)
			}
			seen[v] = true
		}
	}

	obj.Tetras = tetras
	for ti, t := range obj.Tetras {
		for _, v := range t.Vs {
			obj.vertexTetras[v] = append(obj.vertexTetras[v], Index(ti))
		}
	}

	type pair struct{ a, b Index }
	unique := map[pair]bool{}
	var ordered []pair
	for _, t := range obj.Tetras {
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				a, b := t.Vs[i], t.Vs[j]
				if a > b {
					a, b = b, a
				}
				p := pair{a, b}
				if !unique[p] {
					unique[p] = true
					ordered = append(ordered, p)
				}
			}
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].a != ordered[j].a {
			return ordered[i].a < ordered[j].a
		}
		return ordered[i].b < ordered[j].b
	})

	obj.Edges = obj.Edges[:0]
	for _, p := range ordered {
		if p.a == p.b {
			return fmt.Errorf("%w: degenerate edge at vertex %d", ErrInvalidGeometry, p.a)
		}
		length := distance(obj.Positions[p.a], obj.Positions[p.b])
		edgeIdx := Index(len(obj.Edges))
		obj.Edges = append(obj.Edges, newEdge(edgeCompliance, p.a, p.b, length))
		obj.vertexEdges[p.a] = append(obj.vertexEdges[p.a], edgeIdx)
		obj.vertexEdges[p.b] = append(obj.vertexEdges[p.b], edgeIdx)
	}

	obj.UpdateAABB()
	return nil
}

// NumVertices returns the number of vertices in the object.
func (obj *TetraObject) NumVertices() int { return len(obj.Positions) }

// NumEdges returns the number of derived edges.
func (obj *TetraObject) NumEdges() int { return len(obj.Edges) }

// NumTetras returns the number of tetrahedra.
func (obj *TetraObject) NumTetras() int { return len(obj.Tetras) }

// AABB returns the object's last-refreshed world-space bounding box.
func (obj *TetraObject) AABB() AABB { return obj.aabb }

// Translate adds v to every position and refreshes the AABB.
func (obj *TetraObject) Translate(v Real3) {
	for i := range obj.Positions {
		obj.Positions[i] = obj.Positions[i].Add(v)
	}
	obj.UpdateAABB()
}

// SetVelocity sets every vertex's velocity to v.
func (obj *TetraObject) SetVelocity(v Real3) {
	for i := range obj.Velocities {
		obj.Velocities[i] = v
	}
}

// SetInvMass pins (0.0) or frees (nonzero) a single vertex, for an external
// loader to mark fixed vertices (spec.md 6).
func (obj *TetraObject) SetInvMass(v Index, invMass Real) {
	obj.InvMasses[v] = invMass
}

// SetPosition lets an external driver reposition a vertex directly
// (typically one already pinned via SetInvMass) between steps.
func (obj *TetraObject) SetPosition(v Index, p Real3) {
	obj.Positions[v] = p
}

// UpdateAABB recomputes the object-level AABB from current positions and
// each tetrahedron's own AABB (spec.md 4.C, 9: both are required, one for
// the O(n^2) outer broad-phase pass, one for the O(T^2) inner pass).
func (obj *TetraObject) UpdateAABB() {
	if len(obj.Positions) == 0 {
		return
	}
	obj.aabb = NewAABB(obj.Positions[0])
	for _, p := range obj.Positions[1:] {
		obj.aabb = obj.aabb.Expand(p)
	}
	for i := range obj.Tetras {
		obj.updateTetraAABB(i)
	}
}

func (obj *TetraObject) updateTetraAABB(ti int) {
	t := &obj.Tetras[ti]
	ps := obj.tetraPoints(t)
	b := NewAABB(ps[0])
	for _, p := range ps[1:] {
		b = b.Expand(p)
	}
	t.aabb = b
}

// resetTetras marks every tetrahedron's cache stale, for the refresh at the
// start of each step (spec.md 4.F step 1).
func (obj *TetraObject) resetTetras() {
	for i := range obj.Tetras {
		obj.Tetras[i].Invalidate()
	}
}

// tetraPoints returns the four world-space vertex positions of t.
func (obj *TetraObject) tetraPoints(t *Tetrahedron) [4]Real3 {
	return [4]Real3{
		obj.Positions[t.Vs[0]],
		obj.Positions[t.Vs[1]],
		obj.Positions[t.Vs[2]],
		obj.Positions[t.Vs[3]],
	}
}

// refreshTetraCache lazily (re)computes t's face normals, edge vectors, and
// centroid if they were invalidated, caching the previous centroid as
// OldCenter first (spec.md 9; used only for the dp_tang hook).
func (obj *TetraObject) refreshTetraCache(ti int) {
	t := &obj.Tetras[ti]
	if t.initialized {
		return
	}
	t.oldCenter = t.center

	ps := obj.tetraPoints(t)

	addNormal := func(a, b, c, opp Real3) Real3 {
		normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
		center := a.Add(b).Add(c).Mul(1.0 / 3.0)
		toOpposite := opp.Sub(center)
		if normal.Dot(toOpposite) > 0.0 {
			normal = normal.Mul(-1)
		}
		return normal
	}

	t.normals[0] = addNormal(ps[0], ps[1], ps[2], ps[3])
	t.normals[1] = addNormal(ps[0], ps[2], ps[3], ps[1])
	t.normals[2] = addNormal(ps[0], ps[1], ps[3], ps[2])
	t.normals[3] = addNormal(ps[1], ps[2], ps[3], ps[0])

	t.edges[0] = ps[1].Sub(ps[0])
	t.edges[1] = ps[2].Sub(ps[0])
	t.edges[2] = ps[3].Sub(ps[0])
	t.edges[3] = ps[2].Sub(ps[1])
	t.edges[4] = ps[3].Sub(ps[1])
	t.edges[5] = ps[3].Sub(ps[2])

	t.center = ps[0].Add(ps[1]).Add(ps[2]).Add(ps[3]).Mul(0.25)

	t.initialized = true
}

// CreateBox builds a 9-vertex (8 corners + center), 12-tetrahedron box at
// origin with the given extents, matching the vertex and tetrahedron
// ordering of scenario B in spec.md 8 exactly (grounded on
// original_source/object.cpp's create_box).
func CreateBox(origin Real3, width, height, depth Real) *TetraObject {
	hw, hh, hd := width/2.0, height/2.0, depth/2.0
	c := Real3{origin.X() + hw, origin.Y() + hh, origin.Z() + hd}

	a1 := Real3{c.X() - hw, c.Y() + hh, c.Z() - hd}
	a2 := Real3{c.X() - hw, c.Y() + hh, c.Z() + hd}
	a3 := Real3{c.X() + hw, c.Y() + hh, c.Z() + hd}
	a4 := Real3{c.X() + hw, c.Y() + hh, c.Z() - hd}
	b1 := Real3{c.X() - hw, c.Y() - hh, c.Z() - hd}
	b2 := Real3{c.X() - hw, c.Y() - hh, c.Z() + hd}
	b3 := Real3{c.X() + hw, c.Y() - hh, c.Z() + hd}
	b4 := Real3{c.X() + hw, c.Y() - hh, c.Z() - hd}

	ps := []Real3{a1, a2, a3, a4, b1, b2, b3, b4, c}
	obj := newTetraObject(ps)

	idx := [12][4]Index{
		{1, 0, 2, 8},
		{2, 0, 3, 8},
		{4, 5, 7, 8},
		{7, 5, 6, 8},
		{7, 6, 3, 8},
		{3, 6, 2, 8},
		{1, 4, 0, 8},
		{5, 4, 1, 8},
		{3, 4, 7, 8},
		{0, 4, 3, 8},
		{1, 6, 5, 8},
		{2, 6, 1, 8},
	}

	tetras := make([]Tetrahedron, 0, 12)
	for _, vs := range idx {
		vol := tetraVolume(ps[vs[0]], ps[vs[1]], ps[vs[2]], ps[vs[3]])
		tetras = append(tetras, newTetrahedron(vs, vol))
	}

	if err := obj.initTetrasAndEdges(tetras, BoxEdgeCompliance); err != nil {
		// CreateBox's vertex/tetra tables are fixed and always valid;
		// a failure here means the tables themselves are broken.
		panic(err)
	}
	return obj
}

// CreateStackedBoxes builds a height x width x depth lattice of boxes of
// the given edge length, stacked with no gaps from origin upward/outward
// along y/x/z. It generalises the original source's (commented-out)
// create_stacked_cubes helper, which built a single fused voxel mesh, into
// a set of independent CreateBox objects — this module has no shared-mesh
// concept, only a Scene of independent TetraObjects, so each cell of the
// lattice becomes its own object. Handy for building scenario-style scenes
// (e.g. stacked-box tests) without hand-placing each box.
func CreateStackedBoxes(origin Real3, height, width, depth int, size Real) []*TetraObject {
	var boxes []*TetraObject
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			for k := 0; k < depth; k++ {
				corner := Real3{
					origin.X() + Real(j)*size,
					origin.Y() + Real(i)*size,
					origin.Z() + Real(k)*size,
				}
				boxes = append(boxes, CreateBox(corner, size, size, size))
			}
		}
	}
	return boxes
}
