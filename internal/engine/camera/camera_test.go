package camera

import (
	"fmt"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedPosition recomputes the eye from the current angles and distance.
func expectedPosition(c *OrbitCamera) mgl32.Vec3 {
	h := mgl32.DegToRad(c.HAngle())
	v := mgl32.DegToRad(c.VAngle())
	return mgl32.Vec3{
		c.Distance() * math32.Cos(v) * math32.Cos(h),
		Target.Y() + c.Distance()*math32.Sin(v),
		c.Distance() * math32.Cos(v) * math32.Sin(h),
	}
}

func assertVec(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	if !got.ApproxEqualThreshold(want, 1e-4) {
		assert.Fail(t, fmt.Sprintf("vector mismatch: got %v, want %v", got, want), msgAndArgs...)
	}
}

func TestNewOrbitCameraDefaults(t *testing.T) {
	c := NewOrbitCamera()

	require.Equal(t, float32(45), c.HAngle())
	require.Equal(t, float32(0), c.VAngle())
	require.Equal(t, float32(3.5), c.Distance())

	assertVec(t, mgl32.Vec3{3.5 * 0.70710677, 0.5, 3.5 * 0.70710677}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0.5, 0}, c.LookAt())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
}

func TestRotateClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.Rotate(0, 1000)
	require.Equal(t, float32(80), c.VAngle())
	c.Rotate(0, -1000)
	require.Equal(t, float32(-80), c.VAngle())
	c.Rotate(0, 1000)
	assert.Equal(t, float32(80), c.VAngle())
}

func TestRotateYawUnbounded(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Position()

	c.Rotate(720, 0)
	assert.Equal(t, float32(765), c.HAngle())
	assertVec(t, before, c.Position(), "full turns return to the same position")
}

func TestSetAnglesClampsWider(t *testing.T) {
	c := NewOrbitCamera()

	c.SetAngles(10, 85)
	assert.Equal(t, float32(85), c.VAngle(), "SetAngles allows up to 89")
	c.SetAngles(10, 120)
	assert.Equal(t, float32(89), c.VAngle())
	c.SetAngles(10, -120)
	assert.Equal(t, float32(-89), c.VAngle())

	// Rotate from 89 pulls back inside its own tighter range.
	c.SetAngles(0, 89)
	c.Rotate(0, 0)
	assert.Equal(t, float32(80), c.VAngle())
}

func TestZoomClamps(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 100; i++ {
		c.Zoom(0.7)
		require.GreaterOrEqual(t, c.Distance(), float32(MinDistance))
		require.LessOrEqual(t, c.Distance(), float32(MaxDistance))
	}
	assert.Equal(t, float32(8), c.Distance())

	c.Zoom(-1e6)
	assert.Equal(t, float32(1.5), c.Distance())
}

func TestPositionRecomputedImmediately(t *testing.T) {
	c := NewOrbitCamera()

	c.SetAngles(0, 0)
	assertVec(t, mgl32.Vec3{3.5, 0.5, 0}, c.Position())

	c.Zoom(-1)
	assertVec(t, mgl32.Vec3{2.5, 0.5, 0}, c.Position(), "after zoom")

	c.SetAngles(90, 30)
	assertVec(t, mgl32.Vec3{0, 0.5 + 2.5*0.5, 2.5 * 0.8660254}, c.Position(), "after SetAngles")
}

func TestEveryMutatorKeepsPositionInSync(t *testing.T) {
	mutators := map[string]func(c *OrbitCamera){
		"rotate":       func(c *OrbitCamera) { c.Rotate(37, -12) },
		"rotate clamp": func(c *OrbitCamera) { c.Rotate(0, 500) },
		"zoom":         func(c *OrbitCamera) { c.Zoom(1.25) },
		"set angles":   func(c *OrbitCamera) { c.SetAngles(-140, 95) },
		"set distance": func(c *OrbitCamera) { c.SetDistance(0.1) },
		"drag":         func(c *OrbitCamera) { c.HandleDrag(-30, 18) },
		"wheel":        func(c *OrbitCamera) { c.HandleWheel(3) },
		"preset":       func(c *OrbitCamera) { c.ApplyPreset(PresetTop) },
		"reset": func(c *OrbitCamera) {
			c.Rotate(90, 40)
			c.Reset()
		},
	}
	for name, mutate := range mutators {
		t.Run(name, func(t *testing.T) {
			c := NewOrbitCamera()
			mutate(c)
			assertVec(t, expectedPosition(c), c.Position())
			assert.LessOrEqual(t, c.VAngle(), float32(SetPitchLimit))
			assert.GreaterOrEqual(t, c.VAngle(), float32(-SetPitchLimit))
			assert.GreaterOrEqual(t, c.Distance(), float32(MinDistance))
			assert.LessOrEqual(t, c.Distance(), float32(MaxDistance))
		})
	}
}

func TestHandleDragAndWheel(t *testing.T) {
	c := NewOrbitCamera()
	c.DragSensitivity = 0.5
	c.ZoomStep = 0.25

	c.HandleDrag(20, 10)
	assert.Equal(t, float32(55), c.HAngle())
	assert.Equal(t, float32(5), c.VAngle())

	c.HandleWheel(2)
	assert.Equal(t, float32(3.0), c.Distance(), "wheel up zooms in")
	c.HandleWheel(-4)
	assert.Equal(t, float32(4.0), c.Distance(), "wheel down zooms out")
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name string
		h, v float32
	}{
		{"front", 20, 10},
		{"side", 90, 10},
		{"top", 45, 70},
		{"angle", 45, 20},
		{"TOP", 45, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PresetByName(tt.name)
			require.NoError(t, err)
			c := NewOrbitCamera()
			c.ApplyPreset(p)
			assert.Equal(t, tt.h, c.HAngle())
			assert.Equal(t, tt.v, c.VAngle())
		})
	}

	_, err := PresetByName("isometric")
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	c := NewOrbitCamera()
	c.Rotate(33, 12)
	c.Zoom(2)
	c.Reset()

	assert.Equal(t, float32(DefaultHAngle), c.HAngle())
	assert.Equal(t, float32(DefaultVAngle), c.VAngle())
	assert.Equal(t, float32(DefaultDistance), c.Distance())
}

func TestSetDistanceClamps(t *testing.T) {
	c := NewOrbitCamera()

	c.SetDistance(0.2)
	assert.Equal(t, float32(MinDistance), c.Distance())
	c.SetDistance(100)
	assert.Equal(t, float32(MaxDistance), c.Distance())
	c.SetDistance(4)
	assert.InDelta(t, 4, c.Position().Sub(Target).Len(), 1e-4)
}
