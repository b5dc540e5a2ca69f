package alert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtysync/provider-sync/internal/alert"
)

func at(hour, min int, loc *time.Location) time.Time {
	return time.Date(2025, 3, 1, hour, min, 0, 0, loc)
}

func TestQuietHours_WrapsMidnight(t *testing.T) {
	q, err := alert.ParseQuietHours("23:00-08:00", "UTC")
	require.NoError(t, err)
	require.NotNil(t, q)

	tests := []struct {
		hour, min int
		want      bool
	}{
		{22, 59, false},
		{23, 0, true},
		{0, 0, true},
		{7, 59, true},
		{8, 0, false},
		{12, 0, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, q.Contains(at(tt.hour, tt.min, time.UTC)), "%02d:%02d", tt.hour, tt.min)
	}
}

func TestQuietHours_SameDay(t *testing.T) {
	q, err := alert.ParseQuietHours("13:30-14:00", "")
	require.NoError(t, err)

	assert.False(t, q.Contains(at(13, 29, time.UTC)))
	assert.True(t, q.Contains(at(13, 30, time.UTC)))
	assert.True(t, q.Contains(at(13, 59, time.UTC)))
	assert.False(t, q.Contains(at(14, 0, time.UTC)))
}

func TestQuietHours_Timezone(t *testing.T) {
	q, err := alert.ParseQuietHours("23:00-08:00", "Europe/Moscow")
	require.NoError(t, err)

	// 21:00 UTC is 00:00 in Moscow
	assert.True(t, q.Contains(at(21, 0, time.UTC)))
	// 06:00 UTC is 09:00 in Moscow
	assert.False(t, q.Contains(at(6, 0, time.UTC)))
}

func TestQuietHours_Disabled(t *testing.T) {
	q, err := alert.ParseQuietHours("", "UTC")
	require.NoError(t, err)
	assert.Nil(t, q)
	assert.False(t, q.Contains(at(3, 0, time.UTC)))

	q, err = alert.ParseQuietHours("08:00-08:00", "UTC")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestQuietHours_Invalid(t *testing.T) {
	for _, spec := range []string{"2300-0800", "25:00-08:00", "23:00-8", "night"} {
		_, err := alert.ParseQuietHours(spec, "UTC")
		assert.Error(t, err, spec)
	}
}
