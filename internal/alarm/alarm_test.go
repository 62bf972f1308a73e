package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/flipclock/internal/clock"
)

func TestParseTarget(t *testing.T) {
	t.Parallel()

	got, err := ParseTarget("07:30")
	require.NoError(t, err)
	require.Equal(t, Target{Hour: 7, Minute: 30}, got)
	require.Equal(t, "07:30", got.String())

	got, err = ParseTarget(" 7:05 ")
	require.NoError(t, err)
	require.Equal(t, Target{Hour: 7, Minute: 5}, got)

	for _, bad := range []string{"", "24:00", "12:60", "12:5", "ab:cd", "1230"} {
		_, err := ParseTarget(bad)
		require.ErrorIs(t, err, ErrInvalidTime, "input %q", bad)
	}
}

func TestArmThenFireExactlyOnce(t *testing.T) {
	t.Parallel()

	fake := clock.NewFake(time.Date(2026, 3, 1, 6, 59, 50, 0, time.Local))
	var a Alarm
	require.NoError(t, a.SetTarget(Target{Hour: 7, Minute: 0}))
	require.Equal(t, Idle, a.Phase())
	require.NoError(t, a.Arm())
	require.True(t, a.Armed())

	fires := 0
	for i := 0; i < 120; i++ {
		if a.Check(fake.Now()) {
			fires++
			require.Equal(t, 7, fake.Now().Hour())
			require.Equal(t, 0, fake.Now().Second())
		}
		fake.Advance(time.Second)
	}
	require.Equal(t, 1, fires)
	require.Equal(t, Fired, a.Phase())
	require.True(t, a.HasFired())
	require.False(t, a.Armed())
}

func TestPassingTargetWithoutSecondZeroNeverFires(t *testing.T) {
	t.Parallel()

	var a Alarm
	require.NoError(t, a.SetTarget(Target{Hour: 7, Minute: 0}))
	require.NoError(t, a.Arm())

	// Ticks land on odd seconds only, so 07:00:00 is never observed.
	now := time.Date(2026, 3, 1, 6, 59, 1, 0, time.Local)
	for i := 0; i < 90; i++ {
		require.False(t, a.Check(now))
		now = now.Add(2 * time.Second)
	}
	require.True(t, a.Armed())
}

func TestIdleAlarmNeverFires(t *testing.T) {
	t.Parallel()

	var a Alarm
	require.NoError(t, a.SetTarget(Target{Hour: 7, Minute: 0}))
	require.False(t, a.Check(time.Date(2026, 3, 1, 7, 0, 0, 0, time.Local)))
	require.Equal(t, Idle, a.Phase())
}

func TestArmRequiresTarget(t *testing.T) {
	t.Parallel()

	var a Alarm
	require.ErrorIs(t, a.Arm(), ErrNoTarget)
	require.Equal(t, Idle, a.Phase())
}

func TestSetTargetWhileArmedRejected(t *testing.T) {
	t.Parallel()

	var a Alarm
	require.NoError(t, a.SetTarget(Target{Hour: 7}))
	require.NoError(t, a.Arm())
	require.ErrorIs(t, a.SetTarget(Target{Hour: 8}), ErrArmed)
	tgt, ok := a.Target()
	require.True(t, ok)
	require.Equal(t, 7, tgt.Hour)
}

func TestCancelAndRearmAfterFiring(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 7, 0, 0, 0, time.Local)
	var a Alarm
	require.NoError(t, a.SetTarget(Target{Hour: 7}))
	require.NoError(t, a.Arm())
	require.True(t, a.Check(at))
	require.Equal(t, at, a.FiredAt())

	a.Cancel()
	require.Equal(t, Idle, a.Phase())

	require.NoError(t, a.Arm())
	require.True(t, a.Check(at.AddDate(0, 0, 1)), "re-armed alarm fires next day")
}

func TestSnooze(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 7, 0, 0, 0, time.Local)
	var a Alarm
	require.Error(t, a.Snooze(at, 5*time.Minute))

	require.NoError(t, a.SetTarget(Target{Hour: 7}))
	require.NoError(t, a.Arm())
	require.True(t, a.Check(at))

	require.NoError(t, a.Snooze(at.Add(20*time.Second), 5*time.Minute))
	require.True(t, a.Armed())
	tgt, _ := a.Target()
	require.Equal(t, Target{Hour: 7, Minute: 6}, tgt)
}

func TestTargetNext(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC), Target{Hour: 7, Minute: 30}.Next(now))
	require.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), Target{Hour: 9}.Next(now))
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 17, 9, 5, 3, 0, time.UTC)
	require.Equal(t, "09:05:03", FormatClock(now))
	require.Equal(t, "Saturday, October 17, 2026", FormatDate(now))
}
