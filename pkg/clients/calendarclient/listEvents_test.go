package calendarclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func TestMapEvent(t *testing.T) {
	item := &calendar.Event{
		Id:      "evt-1",
		Summary: "CS101, MATH20",
		Status:  "confirmed",
		Start:   &calendar.EventDateTime{DateTime: "2025-09-02T09:00:00Z"},
		End:     &calendar.EventDateTime{DateTime: "2025-09-02T11:00:00Z"},
	}

	event, ok, err := mapEvent(item)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "evt-1", event.ID)
	assert.Equal(t, "CS101, MATH20", event.Summary)
	assert.Equal(t, "confirmed", event.Status)
	assert.Equal(t, time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC), event.Start)
	assert.Equal(t, time.Date(2025, 9, 2, 11, 0, 0, 0, time.UTC), event.End)
}

func TestMapEvent_SkipsEntriesWithoutTimes(t *testing.T) {
	tests := []struct {
		name string
		item *calendar.Event
	}{
		{
			name: "all-day event",
			item: &calendar.Event{
				Id:    "all-day",
				Start: &calendar.EventDateTime{Date: "2025-09-02"},
				End:   &calendar.EventDateTime{Date: "2025-09-03"},
			},
		},
		{
			name: "cancelled instance stripped of times",
			item: &calendar.Event{Id: "stripped", Status: "cancelled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := mapEvent(tt.item)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMapEvent_BadTimestamp(t *testing.T) {
	item := &calendar.Event{
		Id:    "bad",
		Start: &calendar.EventDateTime{DateTime: "not a time"},
		End:   &calendar.EventDateTime{DateTime: "2025-09-02T11:00:00Z"},
	}

	_, _, err := mapEvent(item)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad start time")
}
