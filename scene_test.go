package xpbd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneAddObjectReturnsIndex(t *testing.T) {
	scene := NewScene(nil)
	idx := scene.AddObject(CreateBox(Real3{0, 0, 0}, 1, 1, 1))
	assert.Equal(t, 0, idx)

	idx2 := scene.AddObject(CreateBox(Real3{2, 0, 0}, 1, 1, 1))
	assert.Equal(t, 1, idx2)
}

func TestSceneGetObjectOutOfRange(t *testing.T) {
	scene := NewScene(nil)
	scene.AddObject(CreateBox(Real3{0, 0, 0}, 1, 1, 1))

	_, err := scene.GetObject(5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	obj, err := scene.GetObject(0)
	require.NoError(t, err)
	assert.NotNil(t, obj)
}

func TestSceneClearSprings(t *testing.T) {
	scene := NewScene(nil)
	scene.AddObject(CreateBox(Real3{0, 0, 0}, 1, 1, 1))
	scene.AddObject(CreateBox(Real3{2, 0, 0}, 1, 1, 1))
	scene.AddSpring(NewSpring(0.0, 0, 0, 1, 0, 1.0))

	assert.Len(t, scene.Springs, 1)
	scene.ClearSprings()
	assert.Empty(t, scene.Springs)
}

func TestSceneCenterIsUnionOfObjectAABBs(t *testing.T) {
	scene := NewScene(nil)
	scene.AddObject(CreateBox(Real3{-2, 0, 0}, 1, 1, 1))
	scene.AddObject(CreateBox(Real3{1, 0, 0}, 1, 1, 1))

	center := scene.Center()
	assert.InDelta(t, 0.0, center.X(), 1e-9)
}

func TestSceneCenterEmpty(t *testing.T) {
	scene := NewScene(nil)
	assert.Equal(t, Real3{}, scene.Center())
}
