package xpbd

// Config bundles the tunables spec.md 6 names as a resource-style struct
// (teacher convention: PhysicsWorld in Gekko3D-gekko/physics.go), rather
// than package-level globals, so independent simulations never share
// mutable tunable state.
type Config struct {
	// StepsPerSecond sets the fixed simulation time step: Dt = 1 /
	// StepsPerSecond.
	StepsPerSecond int
	// IterationsPerStep is the number of Gauss-Seidel sweeps per step.
	IterationsPerStep int

	Gravity Real3
	GroundY Real

	BoxEdgeCompliance Compliance
	WrapCompliance    Compliance
	CollCompliance    Compliance
}

// BoxEdgeCompliance is the default compliance CreateBox uses for its
// derived edges (spec.md 6). Exported so scene-building code that doesn't
// go through a Config can still reference the documented default.
const BoxEdgeCompliance Compliance = 0.0

// DefaultConfig returns the tunables and defaults spec.md 6 documents.
func DefaultConfig() Config {
	return Config{
		StepsPerSecond:    240,
		IterationsPerStep: 10,
		Gravity:           Real3{0, -9.81, 0},
		GroundY:           -2.0,
		BoxEdgeCompliance: BoxEdgeCompliance,
		WrapCompliance:    0.0,
		CollCompliance:    0.0,
	}
}

// DeltaT returns the fixed per-step time, 1/StepsPerSecond.
func (c Config) DeltaT() Real {
	return 1.0 / Real(c.StepsPerSecond)
}

// Collision is one surviving tetra-tetra overlap from one step's
// broad+narrow phase pass (spec.md 4.F step 2).
type Collision struct {
	Obj1, Obj2   int
	Tetra1Idx    int
	Tetra2Idx    int
	Info         CollisionInfo
	// DpTang is the tangential component of the relative tetra-centroid
	// displacement across this step, computed and stored but not
	// consumed by any constraint (spec.md 9 open question: a hook for a
	// future friction response).
	DpTang Real3
}

// XPBD is the fixed-timestep integrator: collect collisions, predict under
// gravity, project constraints with Gauss-Seidel, then finalize
// velocities and clamp to the ground plane (spec.md 4.F).
type XPBD struct {
	Config Config
	log    Logger
}

// NewXPBD builds an integrator from cfg. log may be nil.
func NewXPBD(cfg Config, log Logger) *XPBD {
	if log == nil {
		log = NewNopLogger()
	}
	return &XPBD{Config: cfg, log: log}
}

// Step advances scene by one fixed timestep (spec.md 4.F). It never
// returns an error: all degenerate cases inside the hot path are skipped
// silently per spec.md 7, so a step always completes.
func (x *XPBD) Step(scene *Scene) {
	dt := x.Config.DeltaT()

	// 1. Tetra cache refresh.
	for _, obj := range scene.Objects {
		obj.resetTetras()
	}

	// 2. Collect collisions.
	collisions := x.collectCollisions(scene)
	x.log.Debugf("xpbd: %d collisions this step", len(collisions))

	// 3. Per-vertex collision goal.
	seedCollisionGoals(scene.Objects, collisions, x.Config.CollCompliance)

	// 4. Predict.
	for _, obj := range scene.Objects {
		for vi := range obj.Positions {
			if obj.InvMasses[vi] == 0.0 {
				continue
			}
			obj.OldPositions[vi] = obj.Positions[vi]
			obj.Velocities[vi] = obj.Velocities[vi].Add(x.Config.Gravity.Mul(dt))
			obj.Positions[vi] = obj.Positions[vi].Add(obj.Velocities[vi].Mul(dt))
		}
	}

	// 5. Reset lambda.
	for _, obj := range scene.Objects {
		for vi := range obj.VertexCollisionConstraints {
			obj.VertexCollisionConstraints[vi].Reset()
		}
		for i := range obj.Edges {
			obj.Edges[i].Reset()
		}
		for i := range obj.Tetras {
			obj.Tetras[i].Reset()
		}
	}
	for i := range scene.Springs {
		scene.Springs[i].Reset()
	}

	// 6. Gauss-Seidel: edges, then springs, then collisions, in that
	// fixed order, for IterationsPerStep sweeps.
	for it := 0; it < x.Config.IterationsPerStep; it++ {
		for _, obj := range scene.Objects {
			for i := range obj.Edges {
				solveEdge(obj, &obj.Edges[i], dt)
			}
		}

		for i := range scene.Springs {
			spring := &scene.Springs[i]
			obj1 := scene.Objects[spring.Obj1]
			obj2 := scene.Objects[spring.Obj2]
			solveSpring(obj1, obj2, spring, dt)
		}

		for _, obj := range scene.Objects {
			for vi := range obj.VertexCollisionConstraints {
				solveCollision(obj, &obj.VertexCollisionConstraints[vi], dt)
			}
		}
	}

	// 7. Floor clamp, velocities, AABB refresh.
	for _, obj := range scene.Objects {
		for vi := range obj.Positions {
			if obj.InvMasses[vi] == 0.0 {
				continue
			}
			if obj.Positions[vi].Y() < x.Config.GroundY {
				obj.Positions[vi] = Real3{obj.Positions[vi].X(), x.Config.GroundY, obj.Positions[vi].Z()}
			}
			obj.Velocities[vi] = obj.Positions[vi].Sub(obj.OldPositions[vi]).Mul(1.0 / dt)
		}
		obj.UpdateAABB()
	}
}

// collectCollisions runs the broad phase (spec.md 4.E) over every object
// pair, then the narrow phase (SAT, spec.md 4.D) over every surviving
// tetra pair, and records each collision's pair handle at the eight
// vertex slots it touches (spec.md 4.F step 2).
func (x *XPBD) collectCollisions(scene *Scene) []Collision {
	for _, obj := range scene.Objects {
		for vi := range obj.vertexCollisions {
			obj.vertexCollisions[vi] = obj.vertexCollisions[vi][:0]
		}
	}

	var collisions []Collision

	for _, op := range collectObjectPairs(scene.Objects) {
		obj1 := scene.Objects[op.obj1]
		obj2 := scene.Objects[op.obj2]

		for _, tp := range collectTetraPairs(obj1, obj2) {
			obj1.refreshTetraCache(tp.t1)
			obj2.refreshTetraCache(tp.t2)

			t1 := &obj1.Tetras[tp.t1]
			t2 := &obj2.Tetras[tp.t2]

			info := satTetTet(obj1.tetraPoints(t1), obj2.tetraPoints(t2))
			if !info.Intersecting {
				continue
			}

			dp1 := t1.center.Sub(t1.oldCenter)
			dp2 := t2.center.Sub(t2.oldCenter)
			dp := dp1.Sub(dp2)
			dpTang := dp.Sub(info.Axis.Mul(dp.Dot(info.Axis)))

			collIdx := len(collisions)
			collisions = append(collisions, Collision{
				Obj1:      op.obj1,
				Obj2:      op.obj2,
				Tetra1Idx: tp.t1,
				Tetra2Idx: tp.t2,
				Info:      info,
				DpTang:    dpTang,
			})

			for _, v := range t1.Vs {
				obj1.vertexCollisions[v] = append(obj1.vertexCollisions[v], collIdx)
			}
			for _, v := range t2.Vs {
				obj2.vertexCollisions[v] = append(obj2.vertexCollisions[v], collIdx)
			}
		}
	}

	return collisions
}

// seedCollisionGoals computes, for every vertex of every object, the
// averaged half-MTV collision goal (spec.md 4.F step 3), overwriting each
// object's VertexCollisionConstraints in place.
func seedCollisionGoals(objects []*TetraObject, collisions []Collision, compliance Compliance) {
	for oi, obj := range objects {
		for vi := range obj.Positions {
			constraint := CollisionConstraint{
				baseConstraint: baseConstraint{Compliance: compliance},
				V:              Index(vi),
			}

			incidences := obj.vertexCollisions[vi]
			if len(incidences) == 0 {
				constraint.Active = false
				obj.VertexCollisionConstraints[vi] = constraint
				continue
			}

			var goal Real3
			for _, ci := range incidences {
				coll := collisions[ci]
				update := coll.Info.Axis.Mul(coll.Info.Penetration * 0.5)
				if coll.Obj1 == oi {
					goal = goal.Sub(update)
				} else {
					goal = goal.Add(update)
				}
			}
			goal = goal.Mul(1.0 / Real(len(incidences)))
			constraint.Active = true
			constraint.GoalPosition = goal.Add(obj.Positions[vi])

			obj.VertexCollisionConstraints[vi] = constraint
		}
	}
}
