package xpbd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTetra(offset Real3) [4]Real3 {
	return [4]Real3{
		offset.Add(Real3{0, 0, 0}),
		offset.Add(Real3{1, 0, 0}),
		offset.Add(Real3{0, 1, 0}),
		offset.Add(Real3{0, 0, 1}),
	}
}

func TestSATSeparatedTetrahedraDoNotIntersect(t *testing.T) {
	p1 := unitTetra(Real3{0, 0, 0})
	p2 := unitTetra(Real3{10, 0, 0})

	info := satTetTet(p1, p2)
	assert.False(t, info.Intersecting)
}

func TestSATOverlappingTetrahedraIntersect(t *testing.T) {
	p1 := unitTetra(Real3{0, 0, 0})
	p2 := unitTetra(Real3{0.2, 0, 0})

	info := satTetTet(p1, p2)
	require.True(t, info.Intersecting)
	assert.Greater(t, info.Penetration, Real(0))
}

func TestSATGrazingContactBelowThresholdIsNotCollision(t *testing.T) {
	// Shifted so that the x face normal reports an overlap of half
	// NotCollisionThreshold: effectively touching, not penetrating.
	p1 := unitTetra(Real3{0, 0, 0})
	p2 := unitTetra(Real3{1.0 - NotCollisionThreshold/2.0, 0, 0})

	info := satTetTet(p1, p2)
	assert.False(t, info.Intersecting)
}

func TestSATIsAntisymmetricUnderArgumentSwap(t *testing.T) {
	p1 := unitTetra(Real3{0, 0, 0})
	p2 := unitTetra(Real3{0.2, 0, 0})

	a := satTetTet(p1, p2)
	b := satTetTet(p2, p1)

	require.True(t, a.Intersecting)
	require.True(t, b.Intersecting)
	assert.InDelta(t, a.Penetration, b.Penetration, 1e-9)
	assert.InDelta(t, -1.0, a.Axis.Dot(b.Axis), 1e-6,
		"swapping arguments should reverse the reported MTV direction")
}
