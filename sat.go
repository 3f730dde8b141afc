package xpbd

// NotCollisionThreshold is the minimum overlap, along every tested axis,
// below which two tetrahedra are treated as not intersecting (spec.md 4.D,
// 6). Keeping it strictly positive avoids reporting grazing, near-zero
// contact as a real collision.
const NotCollisionThreshold Real = 1e-3

// axisDegenerateThreshold discards edge-cross-product axes too short to
// normalize reliably (spec.md 4.D).
const axisDegenerateThreshold Real = 1e-6

// CollisionOwner records which body contributed the separating axis chosen
// as the minimum translation vector.
type CollisionOwner uint8

const (
	// OwnerEdgeCross means the MTV axis came from an edge1 x edge2 cross
	// product, not either tetrahedron's own face normal.
	OwnerEdgeCross CollisionOwner = 0
	OwnerTetra1    CollisionOwner = 1
	OwnerTetra2    CollisionOwner = 2
)

// CollisionInfo is the result of a tetra-tetra SAT test (spec.md 4.D).
type CollisionInfo struct {
	Intersecting bool
	// Axis is the minimum-translation direction, pointing from tetra1's
	// centroid toward tetra2's, valid only when Intersecting is true.
	Axis        Real3
	Penetration Real
	Owner       CollisionOwner
}

// satAxis pairs a candidate separating axis with the body that produced it,
// so the MTV search can report Owner without a second pass.
type satAxis struct {
	axis  Real3
	owner CollisionOwner
}

func faceNormals(ps [4]Real3, owner CollisionOwner, out []satAxis) []satAxis {
	addNormal := func(a, b, c, opp Real3) Real3 {
		normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
		center := a.Add(b).Add(c).Mul(1.0 / 3.0)
		toOpposite := opp.Sub(center)
		if normal.Dot(toOpposite) > 0.0 {
			normal = normal.Mul(-1)
		}
		return normal
	}
	out = append(out,
		satAxis{addNormal(ps[0], ps[1], ps[2], ps[3]), owner},
		satAxis{addNormal(ps[0], ps[2], ps[3], ps[1]), owner},
		satAxis{addNormal(ps[0], ps[1], ps[3], ps[2]), owner},
		satAxis{addNormal(ps[1], ps[2], ps[3], ps[0]), owner},
	)
	return out
}

func tetraEdgeVectors(ps [4]Real3) [6]Real3 {
	return [6]Real3{
		ps[1].Sub(ps[0]),
		ps[2].Sub(ps[0]),
		ps[3].Sub(ps[0]),
		ps[2].Sub(ps[1]),
		ps[3].Sub(ps[1]),
		ps[3].Sub(ps[2]),
	}
}

func projectTetra(ps [4]Real3, axis Real3) (min, max Real) {
	min = ps[0].Dot(axis)
	max = min
	for _, p := range ps[1:] {
		proj := p.Dot(axis)
		if proj < min {
			min = proj
		}
		if proj > max {
			max = proj
		}
	}
	return min, max
}

// satTetTet runs the Separating-Axis Theorem test between two tetrahedra
// given by their four world-space vertices each (spec.md 4.D).
//
// Axis iteration order is fixed — tetra1's four face normals, then
// tetra2's, then the up-to-36 edge1 x edge2 cross products in declared
// order — so that ties in overlap are broken by first-seen, as spec.md
// 4.D and 8 (determinism) require.
func satTetTet(p1, p2 [4]Real3) CollisionInfo {
	axes := make([]satAxis, 0, 8+36)
	axes = faceNormals(p1, OwnerTetra1, axes)
	axes = faceNormals(p2, OwnerTetra2, axes)

	e1 := tetraEdgeVectors(p1)
	e2 := tetraEdgeVectors(p2)

	c1 := p1[0].Add(p1[1]).Add(p1[2]).Add(p1[3]).Mul(0.25)
	c2 := p2[0].Add(p2[1]).Add(p2[2]).Add(p2[3]).Mul(0.25)
	centerVec := c2.Sub(c1)

	for _, a := range e1 {
		for _, b := range e2 {
			axis := a.Cross(b)
			if axis.Len() < axisDegenerateThreshold {
				continue
			}
			axis = axis.Normalize()
			if axis.Dot(centerVec) < 0.0 {
				axis = axis.Mul(-1)
			}
			axes = append(axes, satAxis{axis, OwnerEdgeCross})
		}
	}

	minOverlap := Real(0)
	var minAxis Real3
	var owner CollisionOwner
	first := true

	for _, sa := range axes {
		min1, max1 := projectTetra(p1, sa.axis)
		min2, max2 := projectTetra(p2, sa.axis)

		overlap := minReal(max1, max2) - maxReal(min1, min2)
		if overlap < NotCollisionThreshold {
			return CollisionInfo{}
		}
		if first || overlap < minOverlap {
			first = false
			minOverlap = overlap
			minAxis = sa.axis
			owner = sa.owner
			if sa.owner == OwnerTetra2 {
				minAxis = minAxis.Mul(-1)
			}
		}
	}

	// A face normal is outward from its own tetrahedron, which need not
	// point from tetra1 toward tetra2; orient it like the edge-cross axes.
	if minAxis.Dot(centerVec) < 0.0 {
		minAxis = minAxis.Mul(-1)
	}

	return CollisionInfo{
		Intersecting: true,
		Axis:         minAxis,
		Penetration:  minOverlap,
		Owner:        owner,
	}
}

func minReal(a, b Real) Real {
	if a < b {
		return a
	}
	return b
}

func maxReal(a, b Real) Real {
	if a > b {
		return a
	}
	return b
}
