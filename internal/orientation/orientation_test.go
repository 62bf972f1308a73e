package orientation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDetectWidthHeightFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, ViewStopwatch, Detect(Reading{Width: 800, Height: 400}, DefaultThresholds))
	require.Equal(t, ViewAlarm, Detect(Reading{Width: 400, Height: 800}, DefaultThresholds))
	require.Equal(t, ViewAlarm, Detect(Reading{Width: 500, Height: 500}, DefaultThresholds), "square counts as portrait")
}

func TestDetectPlatformType(t *testing.T) {
	t.Parallel()

	cases := map[Type]ViewState{
		PortraitPrimary:    ViewAlarm,
		LandscapePrimary:   ViewStopwatch,
		PortraitSecondary:  ViewTimer,
		LandscapeSecondary: ViewWeather,
	}
	for typ, want := range cases {
		// Type wins over geometry when no tilt is available.
		got := Detect(Reading{Type: typ, Width: 400, Height: 800}, DefaultThresholds)
		require.Equal(t, want, got, "type %s", typ)
	}
	require.Equal(t, ViewStopwatch, Detect(Reading{Type: "bogus", Width: 900, Height: 300}, DefaultThresholds))
}

func TestDetectTiltRefinement(t *testing.T) {
	t.Parallel()

	landscape := func(gamma float64) Reading {
		return Reading{Width: 800, Height: 400, Tilt: &Tilt{Gamma: gamma}}
	}
	portrait := func(beta float64) Reading {
		return Reading{Width: 400, Height: 800, Tilt: &Tilt{Beta: beta}}
	}

	require.Equal(t, ViewWeather, Detect(landscape(60), DefaultThresholds))
	require.Equal(t, ViewStopwatch, Detect(landscape(45), DefaultThresholds), "threshold is exclusive")
	require.Equal(t, ViewStopwatch, Detect(landscape(-60), DefaultThresholds))

	require.Equal(t, ViewAlarm, Detect(portrait(80), DefaultThresholds))
	require.Equal(t, ViewTimer, Detect(portrait(170), DefaultThresholds))
	require.Equal(t, ViewTimer, Detect(portrait(-150), DefaultThresholds))
	require.Equal(t, ViewTimer, Detect(portrait(-100), DefaultThresholds))
	require.Equal(t, ViewAlarm, Detect(portrait(-45), DefaultThresholds))

	// Tilt overrides a stale platform type.
	r := portrait(170)
	r.Type = PortraitPrimary
	require.Equal(t, ViewTimer, Detect(r, DefaultThresholds))
}

func TestDetectorTransitionWindow(t *testing.T) {
	t.Parallel()

	d := NewDetector(DefaultThresholds, 300*time.Millisecond)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	v, changed := d.Observe(Reading{Width: 400, Height: 800}, start)
	require.Equal(t, ViewAlarm, v)
	require.True(t, changed, "first reading is a change")
	require.True(t, d.Transitioning(start.Add(100*time.Millisecond)))
	require.False(t, d.Transitioning(start.Add(300*time.Millisecond)))

	later := start.Add(time.Second)
	v, changed = d.Observe(Reading{Width: 400, Height: 800}, later)
	require.Equal(t, ViewAlarm, v)
	require.False(t, changed)
	require.False(t, d.Transitioning(later))

	v, changed = d.Observe(Reading{Width: 800, Height: 400}, later)
	require.Equal(t, ViewStopwatch, v)
	require.True(t, changed)
	require.True(t, d.Transitioning(later.Add(299*time.Millisecond)))

	typ, view := d.Current()
	require.Equal(t, LandscapePrimary, typ)
	require.Equal(t, ViewStopwatch, view)
}

func TestViewStateMappingsAreExhaustive(t *testing.T) {
	t.Parallel()

	seenRoutes := map[string]bool{}
	for _, v := range AllViews {
		require.True(t, v.Valid())
		require.NotEqual(t, "Unknown", v.Title())
		require.False(t, seenRoutes[v.Route()], "duplicate route %s", v.Route())
		seenRoutes[v.Route()] = true

		back, ok := v.OrientationType().View()
		require.True(t, ok)
		require.Equal(t, v, back)

		parsed, ok := ParseViewState(v.Route())
		require.True(t, ok)
		require.Equal(t, v, parsed)
	}
	_, ok := ParseViewState("/settings")
	require.False(t, ok)
	require.False(t, ViewState(9).Valid())
	require.Equal(t, "portrait primary", PortraitPrimary.Label())
}

func TestParseTilt(t *testing.T) {
	t.Parallel()

	tilt, err := ParseTilt("170, -3.5")
	require.NoError(t, err)
	require.Equal(t, Tilt{Beta: 170, Gamma: -3.5}, tilt)

	_, err = ParseTilt("170")
	require.Error(t, err)
	_, err = ParseTilt("x,1")
	require.Error(t, err)
}

func TestTiltFromAccel(t *testing.T) {
	t.Parallel()

	upright := TiltFromAccel(0, -9.8, 0)
	require.InDelta(t, 90, upright.Beta, 0.001)
	require.InDelta(t, 0, upright.Gamma, 0.001)

	sideways := TiltFromAccel(-9.8, 0, 0)
	require.InDelta(t, 90, sideways.Gamma, 0.001)
}

func TestNoSensorDenies(t *testing.T) {
	t.Parallel()

	var s Sensor = NoSensor{}
	require.Equal(t, PermissionDenied, s.RequestPermission(context.Background()))
	_, err := s.Read(context.Background())
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestIIOSensorReadsAccelerometer(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := NewIIOSensor(root)
	require.Equal(t, PermissionDenied, s.RequestPermission(context.Background()), "no devices yet")
	_, err := s.Read(context.Background())
	require.ErrorIs(t, err, ErrPermissionDenied)

	dev := filepath.Join(root, "iio:device0")
	require.NoError(t, os.MkdirAll(dev, 0o755))
	for axis, v := range map[string]string{"x": "0", "y": "-512", "z": "0"} {
		require.NoError(t, os.WriteFile(filepath.Join(dev, "in_accel_"+axis+"_raw"), []byte(v+"\n"), 0o644))
	}

	require.Equal(t, PermissionGranted, s.RequestPermission(context.Background()))
	tilt, err := s.Read(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 90, tilt.Beta, 0.001)
}
