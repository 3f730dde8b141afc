package xpbd

// minSolveLength guards the edge/spring direction vector against
// normalizing a near-zero-length gap (spec.md 4.G).
const minSolveLength Real = 1e-6

// solveEdge projects one edge-length constraint for one Gauss-Seidel
// iteration (spec.md 4.G). obj is the edge's owning object.
func solveEdge(obj *TetraObject, edge *Edge, dt Real) {
	x1 := obj.Positions[edge.V1]
	x2 := obj.Positions[edge.V2]

	w1 := obj.InvMasses[edge.V1]
	w2 := obj.InvMasses[edge.V2]
	w := w1 + w2
	if w == 0.0 {
		return
	}

	length := distance(x1, x2)
	if length < minSolveLength {
		return
	}

	alpha := edge.Compliance / (dt * dt)
	c := length - edge.RestLength
	grad := x2.Sub(x1).Mul(1.0 / length)

	dLambda := (-c - alpha*edge.Lambda) / (w + alpha)
	edge.Lambda += dLambda

	obj.Positions[edge.V1] = x1.Sub(grad.Mul(dLambda * w1))
	obj.Positions[edge.V2] = x2.Add(grad.Mul(dLambda * w2))
}

// solveSpring projects one cross-object spring constraint. obj1/obj2 are
// the spring's two owning objects (possibly the same object).
func solveSpring(obj1, obj2 *TetraObject, spring *SpringConstraint, dt Real) {
	x1 := obj1.Positions[spring.V1]
	x2 := obj2.Positions[spring.V2]

	w1 := obj1.InvMasses[spring.V1]
	w2 := obj2.InvMasses[spring.V2]
	w := w1 + w2
	if w == 0.0 {
		return
	}

	length := distance(x1, x2)
	if length < minSolveLength {
		return
	}

	alpha := spring.Compliance / (dt * dt)
	c := length - spring.RestLength
	grad := x2.Sub(x1).Mul(1.0 / length)

	dLambda := (-c - alpha*spring.Lambda) / (w + alpha)
	spring.Lambda += dLambda

	obj1.Positions[spring.V1] = x1.Sub(grad.Mul(dLambda * w1))
	obj2.Positions[spring.V2] = x2.Add(grad.Mul(dLambda * w2))
}

// solveCollision projects one vertex's collision goal toward its seeded
// goal_position. Inactive constraints are skipped.
func solveCollision(obj *TetraObject, c *CollisionConstraint, dt Real) {
	if !c.Active {
		return
	}

	x := obj.Positions[c.V]
	xGoal := c.GoalPosition

	w := obj.InvMasses[c.V]
	if w == 0.0 {
		return
	}

	length := distance(x, xGoal)
	if length < minSolveLength {
		return
	}

	alpha := c.Compliance / (dt * dt)
	grad := x.Sub(xGoal).Mul(1.0 / length)

	dLambda := (-length - alpha*c.Lambda) / (w + alpha)
	c.Lambda += dLambda

	obj.Positions[c.V] = x.Add(grad.Mul(dLambda * w))
}
