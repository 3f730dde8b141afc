package xpbd

// Compliance is inverse stiffness (m/N); zero means a hard constraint.
type Compliance = Real

// baseConstraint carries the compliance and Lagrange accumulator shared by
// every constraint record (spec.md 4.B). It is embedded, not inherited
// through an interface hierarchy, since Go has no class hierarchies and the
// solver dispatches on concrete type per spec.md 4.G anyway.
type baseConstraint struct {
	Compliance Compliance
	Lambda     Real
}

// Reset zeroes the Lagrange accumulator. Safe to call repeatedly: doing so
// twice in a row is the same as doing it once (spec.md 8, property 8).
func (c *baseConstraint) Reset() {
	c.Lambda = 0
}

// Edge is a length constraint between two vertices of the same object,
// derived at load time from the tetrahedron adjacency (spec.md 3, 4.B).
type Edge struct {
	baseConstraint
	V1, V2     Index
	RestLength Real
}

func newEdge(compliance Compliance, v1, v2 Index, restLength Real) Edge {
	return Edge{
		baseConstraint: baseConstraint{Compliance: compliance},
		V1:             v1,
		V2:             v2,
		RestLength:     restLength,
	}
}

// Tetrahedron is a volumetric element: four vertex indices into its owning
// object, a rest volume fixed at construction, and the per-step caches
// (face normals, edge vectors, centroid) spec.md 3/4.C/9 describe.
//
// Tetrahedron embeds baseConstraint for spec fidelity (spec.md 4.B says
// every constraint record, tetrahedron included, carries a compliance and
// a Lagrange accumulator) even though no solver stage in spec.md 4.F
// projects a volume constraint — Lambda here stays at zero for the
// lifetime of the simulation. That mirrors the original source, where
// Tetrahedron's own reset() hides (rather than overrides) the base
// Constraint::reset() to invalidate the normal cache instead of the
// Lagrange multiplier; Go has no method hiding, so the two concerns are
// split into Reset (lambda, inherited, effectively a no-op here) and
// Invalidate (cache).
type Tetrahedron struct {
	baseConstraint
	Vs         [4]Index
	RestVolume Real

	aabb        AABB
	normals     [4]Real3
	edges       [6]Real3
	center      Real3
	oldCenter   Real3
	initialized bool
}

func newTetrahedron(vs [4]Index, restVolume Real) Tetrahedron {
	return Tetrahedron{Vs: vs, RestVolume: restVolume}
}

// Invalidate marks the tetrahedron's cached normals/edges/center stale so
// the next call to refreshTetraCache recomputes them. Called at the start of
// every step (spec.md 4.F step 1).
func (t *Tetrahedron) Invalidate() {
	t.initialized = false
}

// AABB returns the tetrahedron's last-refreshed world-space bounding box.
func (t *Tetrahedron) AABB() AABB { return t.aabb }

// OldCenter returns the centroid cached at the previous collision
// collection, used only to compute the tangential displacement hook
// (spec.md 9); no constraint consumes it.
func (t *Tetrahedron) OldCenter() Real3 { return t.oldCenter }

// CollisionConstraint is the per-vertex collision-response goal seeded
// fresh every step by the integrator (spec.md 3, 4.F step 3).
type CollisionConstraint struct {
	baseConstraint
	V            Index
	GoalPosition Real3
	Active       bool
}

// SpringConstraint is a cross-object length constraint distinct from an
// Edge because its two endpoints live in different objects (spec.md 3).
type SpringConstraint struct {
	baseConstraint
	Obj1, Obj2 int
	V1, V2     Index
	RestLength Real
}

// NewSpring builds a spring between (obj1, v1) and (obj2, v2) at the given
// rest length and compliance. obj1/obj2 are Scene object indices.
func NewSpring(compliance Compliance, obj1 int, v1 Index, obj2 int, v2 Index, restLength Real) SpringConstraint {
	return SpringConstraint{
		baseConstraint: baseConstraint{Compliance: compliance},
		Obj1:           obj1,
		Obj2:           obj2,
		V1:             v1,
		V2:             v2,
		RestLength:     restLength,
	}
}
