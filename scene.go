package xpbd

import "fmt"

// Scene owns the objects and cross-object spring constraints of one
// simulation (spec.md 3, 4.H). It never deletes objects once added; spring
// constraints may be cleared wholesale.
type Scene struct {
	Objects []*TetraObject
	Springs []SpringConstraint

	log Logger
}

// NewScene creates an empty scene. log may be nil, in which case a no-op
// logger is used.
func NewScene(log Logger) *Scene {
	if log == nil {
		log = NewNopLogger()
	}
	return &Scene{log: log}
}

// AddObject appends obj to the scene and returns its index, usable with
// GetObject.
func (s *Scene) AddObject(obj *TetraObject) int {
	s.Objects = append(s.Objects, obj)
	s.log.Debugf("scene: added object %s (vertices=%d tetras=%d)", obj.ID, obj.NumVertices(), obj.NumTetras())
	return len(s.Objects) - 1
}

// AddSpring appends a cross-object spring constraint.
func (s *Scene) AddSpring(spring SpringConstraint) {
	s.Springs = append(s.Springs, spring)
	s.log.Debugf("scene: added spring obj%d.v%d <-> obj%d.v%d rest=%.4f", spring.Obj1, spring.V1, spring.Obj2, spring.V2, spring.RestLength)
}

// ClearSprings removes every spring constraint, keeping all objects.
func (s *Scene) ClearSprings() {
	s.Springs = s.Springs[:0]
}

// GetObject returns the object at index, or ErrIndexOutOfRange.
func (s *Scene) GetObject(index int) (*TetraObject, error) {
	if index < 0 || index >= len(s.Objects) {
		s.log.Warnf("scene: object index %d out of range (have %d objects)", index, len(s.Objects))
		return nil, fmt.Errorf("%w: object index %d (have %d objects)", ErrIndexOutOfRange, index, len(s.Objects))
	}
	return s.Objects[index], nil
}

// Center returns the center of the union of every object's AABB, for
// camera placement by an embedder (spec.md 6).
func (s *Scene) Center() Real3 {
	if len(s.Objects) == 0 {
		return Real3{}
	}
	union := s.Objects[0].AABB()
	for _, obj := range s.Objects[1:] {
		union = union.Union(obj.AABB())
	}
	return union.Center()
}
