package main

import (
	"testing"
	"time"

	googlecal "assistant/internal/adapter/calendar/google"
	memcalendar "assistant/internal/adapter/calendar/memory"
	"assistant/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar_PicksDriver(t *testing.T) {
	cfg := config.Default().Calendar

	cal, err := buildCalendar(cfg)
	require.NoError(t, err)
	assert.IsType(t, &memcalendar.Calendar{}, cal)

	cfg.Driver = "google"
	cfg.Timeout = 2 * time.Second
	cal, err = buildCalendar(cfg)
	require.NoError(t, err)
	assert.IsType(t, &googlecal.Client{}, cal)
}
