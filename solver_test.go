package xpbd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveEdgeConvergesTowardRestLength(t *testing.T) {
	obj := newTetraObject([]Real3{{0, 0, 0}, {2, 0, 0}})
	edge := newEdge(0.0, 0, 1, 1.0)

	const dt = 1.0 / 60.0
	for i := 0; i < 50; i++ {
		solveEdge(obj, &edge, dt)
	}

	assert.InDelta(t, 1.0, distance(obj.Positions[0], obj.Positions[1]), 1e-6)
}

func TestSolveEdgeRespectsPinnedVertex(t *testing.T) {
	obj := newTetraObject([]Real3{{0, 0, 0}, {2, 0, 0}})
	obj.SetInvMass(0, 0.0)
	edge := newEdge(0.0, 0, 1, 1.0)

	const dt = 1.0 / 60.0
	for i := 0; i < 50; i++ {
		solveEdge(obj, &edge, dt)
	}

	assert.Equal(t, Real3{0, 0, 0}, obj.Positions[0], "a pinned vertex must never move")
	assert.InDelta(t, 1.0, distance(obj.Positions[0], obj.Positions[1]), 1e-6)
}

func TestSolveEdgeNoOpWhenBothPinned(t *testing.T) {
	obj := newTetraObject([]Real3{{0, 0, 0}, {2, 0, 0}})
	obj.SetInvMass(0, 0.0)
	obj.SetInvMass(1, 0.0)
	edge := newEdge(0.0, 0, 1, 1.0)

	solveEdge(obj, &edge, 1.0/60.0)

	assert.Equal(t, Real3{0, 0, 0}, obj.Positions[0])
	assert.Equal(t, Real3{2, 0, 0}, obj.Positions[1])
}

func TestSolveSpringPullsObjectsTogether(t *testing.T) {
	obj1 := newTetraObject([]Real3{{0, 0, 0}})
	obj2 := newTetraObject([]Real3{{5, 0, 0}})
	spring := NewSpring(0.0, 0, 0, 1, 0, 1.0)

	const dt = 1.0 / 60.0
	for i := 0; i < 100; i++ {
		solveSpring(obj1, obj2, &spring, dt)
	}

	assert.InDelta(t, 1.0, distance(obj1.Positions[0], obj2.Positions[0]), 1e-6)
}

func TestSolveCollisionMovesVertexTowardGoal(t *testing.T) {
	obj := newTetraObject([]Real3{{0, 0, 0}})
	c := CollisionConstraint{
		baseConstraint: baseConstraint{Compliance: 0.0},
		V:              0,
		GoalPosition:   Real3{1, 0, 0},
		Active:         true,
	}

	const dt = 1.0 / 60.0
	for i := 0; i < 50; i++ {
		solveCollision(obj, &c, dt)
	}

	assert.InDelta(t, 0.0, distance(obj.Positions[0], c.GoalPosition), 1e-6)
}

func TestSolveCollisionSkippedWhenInactive(t *testing.T) {
	obj := newTetraObject([]Real3{{0, 0, 0}})
	c := CollisionConstraint{
		baseConstraint: baseConstraint{Compliance: 0.0},
		V:              0,
		GoalPosition:   Real3{1, 0, 0},
		Active:         false,
	}

	solveCollision(obj, &c, 1.0/60.0)

	assert.Equal(t, Real3{0, 0, 0}, obj.Positions[0])
}
