package xpbd

import "errors"

// ErrIndexOutOfRange is returned by Scene.GetObject for an out-of-bounds
// object index (spec.md 7).
var ErrIndexOutOfRange = errors.New("xpbd: index out of range")

// ErrInvalidGeometry is returned when object construction is given
// malformed input: a tetrahedron vertex index out of range, a duplicate
// vertex index within one tetrahedron, or a degenerate edge (spec.md 7).
var ErrInvalidGeometry = errors.New("xpbd: invalid geometry")
