package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []string
	d.Subscribe(EventTicketStatusChanged, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.Subject)
		return errors.New("first failed")
	})
	d.Subscribe(EventTicketStatusChanged, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.Subject)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Timestamp.IsZero())
		return nil
	})
	d.Subscribe(EventCampusCreated, func(context.Context, Event) error {
		t.Fatal("unrelated handler called")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketStatusChanged, Subject: "17"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first failed")
	assert.Equal(t, []string{"first:17", "second:17"}, seen)
}

func TestPublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventSupportEmailSent}))
}
