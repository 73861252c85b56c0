package calendarclient

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/learningcommons/coverage/pkg/core/model"
)

// ListWeekEvents returns all timed events on the calendar within the week
// starting at weekStart. Recurring events are expanded into single
// instances by the API. All-day entries (no start time) are skipped since
// they carry no staffing window. Cancelled events are returned with their
// status intact; filtering is the caller's decision.
func (c *Client) ListWeekEvents(calendarID string, weekStart time.Time) ([]model.Event, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)

	var events []model.Event
	pageToken := ""
	for {
		call := c.service.Events.List(calendarID).
			SingleEvents(true).
			ShowDeleted(true).
			TimeMin(weekStart.Format(time.RFC3339)).
			TimeMax(weekEnd.Format(time.RFC3339)).
			OrderBy("startTime").
			MaxResults(2500)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events for calendar %s: %w", calendarID, err)
		}

		for _, item := range resp.Items {
			event, ok, err := mapEvent(item)
			if err != nil {
				return nil, fmt.Errorf("calendar %s: %w", calendarID, err)
			}
			if ok {
				events = append(events, event)
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}

// mapEvent converts an API event into the internal shape. The second
// return value is false for entries without a usable time window
// (all-day events and cancelled instances stripped of their times).
func mapEvent(item *calendar.Event) (model.Event, bool, error) {
	if item.Start == nil || item.End == nil ||
		item.Start.DateTime == "" || item.End.DateTime == "" {
		return model.Event{}, false, nil
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return model.Event{}, false, fmt.Errorf("event %s: bad start time %q: %w", item.Id, item.Start.DateTime, err)
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return model.Event{}, false, fmt.Errorf("event %s: bad end time %q: %w", item.Id, item.End.DateTime, err)
	}

	return model.Event{
		ID:      item.Id,
		Summary: item.Summary,
		Start:   start,
		End:     end,
		Status:  item.Status,
	}, true, nil
}
