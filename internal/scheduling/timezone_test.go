package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneResolver_Resolve(t *testing.T) {
	r := NewTimezoneResolver("UTC")

	tests := []struct {
		state       string
		zone        string
		stdOffset   int
		dstOffset   int
		observesDST bool
	}{
		{"NY", "America/New_York", -5, -4, true},
		{"CA", "America/Los_Angeles", -8, -7, true},
		{"TX", "America/Chicago", -6, -5, true},
		{"CO", "America/Denver", -7, -6, true},
		{"AZ", "America/Phoenix", -7, -7, false},
		{"HI", "Pacific/Honolulu", -10, -10, false},
		{"AK", "America/Anchorage", -9, -8, true},
		{"IN", "America/Indiana/Indianapolis", -5, -4, true},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			zone, err := r.Resolve(tt.state)
			require.NoError(t, err)
			assert.Equal(t, tt.zone, zone.Zone)
			assert.Equal(t, tt.stdOffset, zone.StdOffset)
			assert.Equal(t, tt.dstOffset, zone.DSTOffset)
			assert.Equal(t, tt.observesDST, zone.ObservesDST)
		})
	}
}

func TestTimezoneResolver_ResolveNormalizesInput(t *testing.T) {
	r := NewTimezoneResolver("UTC")

	zone, err := r.Resolve(" ny ")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", zone.Zone)
}

func TestTimezoneResolver_UnknownJurisdiction(t *testing.T) {
	r := NewTimezoneResolver("UTC")

	_, err := r.Resolve("ZZ")
	assert.ErrorIs(t, err, ErrUnknownJurisdiction)

	// lookup failure degrades to the default location instead of failing
	assert.Equal(t, time.UTC, r.Location("ZZ"))
}

func TestTimezoneResolver_CoversAllStates(t *testing.T) {
	r := NewTimezoneResolver("UTC")

	// 50 states plus DC
	assert.Len(t, r.StateCodes(), 51)

	for _, code := range r.StateCodes() {
		zone, err := r.Resolve(code)
		require.NoError(t, err)

		_, err = time.LoadLocation(zone.Zone)
		require.NoErrorf(t, err, "state %s maps to unloadable zone %s", code, zone.Zone)

		if !zone.ObservesDST {
			assert.Equalf(t, zone.StdOffset, zone.DSTOffset, "state %s marked no-DST but offsets differ", code)
		}
	}
}

func TestInDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	phoenix, err := time.LoadLocation("America/Phoenix")
	require.NoError(t, err)

	january := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	july := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

	assert.False(t, InDST(ny, january))
	assert.True(t, InDST(ny, july))

	// Arizona never observes DST
	assert.False(t, InDST(phoenix, january))
	assert.False(t, InDST(phoenix, july))

	assert.False(t, InDST(time.UTC, july))
}

func TestEffectiveOffset(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	january := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	july := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, -5*3600, EffectiveOffset(ny, january))
	assert.Equal(t, -4*3600, EffectiveOffset(ny, july))
}
