package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TASKTIMER_DB", "")
	t.Setenv("TASKTIMER_AUTOSTOP", "")
	t.Setenv("TASKTIMER_STATUS_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tasktimer.db", cfg.DatabaseURL)
	assert.Empty(t, cfg.AutoStopAt)
	assert.Zero(t, cfg.StatusInterval)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TASKTIMER_DB", " /tmp/timer/data.db ")
	t.Setenv("TASKTIMER_AUTOSTOP", "18:30")
	t.Setenv("TASKTIMER_STATUS_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/timer/data.db", cfg.DatabaseURL)
	assert.Equal(t, "18:30", cfg.AutoStopAt)
	assert.Equal(t, 15*time.Minute, cfg.StatusInterval)
}

func TestLoad_BadValues(t *testing.T) {
	t.Setenv("TASKTIMER_STATUS_MINUTES", "-3")
	t.Setenv("TASKTIMER_AUTOSTOP", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.StatusInterval)

	t.Setenv("TASKTIMER_AUTOSTOP", "25:00")
	_, err = Load()
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{in: "00:00"},
		{in: "9:05", hour: 9, minute: 5},
		{in: "23:59", hour: 23, minute: 59},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "1:2:3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, h)
			assert.Equal(t, tt.minute, m)
		})
	}
}
