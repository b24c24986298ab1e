package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/kinematic"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	sc, err := Parse([]byte("name: empty\n"))
	require.NoError(t, err)

	assert.Equal(t, "empty", sc.Name)
	assert.Equal(t, 120, sc.Ticks)
	assert.InDelta(t, 1.0/60, sc.Dt, 1e-7)
	assert.Equal(t, float32(2), sc.CellSize)
}

func TestParse_Rejects(t *testing.T) {
	for name, doc := range map[string]string{
		"zero ticks":  "ticks: 0",
		"negative dt": "dt: -0.1",
		"bad yaml":    "world: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorContains(t, err, "parse scenario")
		})
	}
}

func TestBuildWorld(t *testing.T) {
	sc, err := Parse([]byte(`
world:
  - plane: {point: [0, 0, 0], normal: [0, 2, 0]}
  - box: {center: [0, 1, 4], half_extents: [1, 1, 1], pitch: 15}
  - sphere: {center: [3, 0, 0], radius: 1}
    trigger: true
`))
	require.NoError(t, err)

	w, err := sc.BuildWorld()
	require.NoError(t, err)
	assert.Equal(t, 3, w.Len())

	// the trigger sphere is registered but never reported
	assert.False(t, w.CheckSphere(mgl32.Vec3{3, 2, 0}, 0.5, kinematic.AllLayers))
	assert.True(t, w.CheckSphere(mgl32.Vec3{0, 0.1, 0}, 0.5, kinematic.LayerGround))
}

func TestBuildWorld_ShapeErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"no shape":   "world: [{trigger: true}]",
		"two shapes": "world: [{plane: {normal: [0, 1, 0]}, sphere: {radius: 1}}]",
		"zero plane": "world: [{plane: {normal: [0, 0, 0]}}]",
	} {
		t.Run(name, func(t *testing.T) {
			sc, err := Parse([]byte(doc))
			require.NoError(t, err)
			_, err = sc.BuildWorld()
			assert.ErrorContains(t, err, "world[0]")
		})
	}
}

func TestInputAt(t *testing.T) {
	sc := &Scenario{Inputs: []Step{
		{From: 0, To: 10, Move: mgl32.Vec2{0, 1}},
		{From: 10, To: 11, Jump: true, Sprint: true},
		{From: 20, To: 30, Move: mgl32.Vec2{0.5, 0}, Analog: true},
	}}

	assert.Equal(t, kinematic.Input{Move: mgl32.Vec2{0, 1}}, sc.InputAt(9))
	assert.Equal(t, kinematic.Input{Jump: true, Sprint: true}, sc.InputAt(10))
	assert.Equal(t, kinematic.Input{}, sc.InputAt(15))
	assert.Equal(t, kinematic.Input{Move: mgl32.Vec2{0.5, 0}, AnalogMovement: true}, sc.InputAt(25))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: loaded\nticks: 3\n"), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "loaded", sc.Name)
	assert.Equal(t, 3, sc.Ticks)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ShippedScenarios(t *testing.T) {
	for _, name := range []string{"flat.yaml", "slope.yaml"} {
		sc, err := Load(filepath.Join("..", "scenarios", name))
		require.NoError(t, err, name)
		_, err = sc.BuildWorld()
		require.NoError(t, err, name)
	}
}
