package timeutil

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(1990, time.March, 3, 4, 5, 6, 0, time.UTC),
		time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.November, 30, 14, 10, 0, 0, time.UTC),
	}

	for _, want := range instants {
		got := TimeFromTT(TTFromTime(want))
		assert.WithinDuration(t, want, got, time.Millisecond, "round trip of %s", want)
	}
}

func TestTTIsAheadOfUT(t *testing.T) {
	at := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	tt := TTFromTime(at)
	ut := UTFromTT(tt)

	dtSeconds := (tt - ut) * SecondsPerDay
	assert.InDelta(t, DeltaT(ut), dtSeconds, 1e-3)
	assert.Greater(t, dtSeconds, 50.0)
	assert.Less(t, dtSeconds, 120.0)
}

func TestDeltaTTable(t *testing.T) {
	// ΔT was about 57 s in 1990.
	jd := TTFromTime(time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 57.0, DeltaT(jd), 2.0)
}

func TestBatchConversionsKeepOrder(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	var civil []time.Time
	for i := 0; i < 10; i++ {
		civil = append(civil, start.Add(time.Duration(i)*19*time.Hour))
	}

	tt := TTFromTimes(civil)
	require.Len(t, tt, len(civil))
	for i := 1; i < len(tt); i++ {
		assert.Greater(t, tt[i], tt[i-1])
	}

	back := TimesFromTT(tt)
	for i := range civil {
		assert.WithinDuration(t, civil[i], back[i], time.Millisecond)
	}

	ut := UTFromTTs(tt)
	for i := range tt {
		assert.Less(t, ut[i], tt[i])
	}
}

func TestTimeFromTTNonFinite(t *testing.T) {
	assert.True(t, TimeFromTT(math.NaN()).IsZero())
	assert.True(t, TimeFromTT(math.Inf(1)).IsZero())
}

func TestNormalize360(t *testing.T) {
	assert.InDelta(t, 350.0, Normalize360(-10), 1e-12)
	assert.InDelta(t, 10.0, Normalize360(370), 1e-12)
	assert.InDelta(t, 0.0, Normalize360(0), 1e-12)
}

func TestLocalMidnight(t *testing.T) {
	loc := time.FixedZone("MST", -7*3600)
	got := LocalMidnight(time.Date(2025, time.November, 30, 17, 21, 5, 0, loc))
	assert.Equal(t, time.Date(2025, time.November, 30, 0, 0, 0, 0, loc), got)
}
