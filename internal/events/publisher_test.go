package events

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent_Envelope(t *testing.T) {
	a := NewQuizCreatedEvent(QuizCreatedEvent{QuizID: 1, Title: "Fractions"})
	b := NewQuizCreatedEvent(QuizCreatedEvent{QuizID: 2, Title: "Verbs"})

	assert.Equal(t, EventQuizCreated, a.Type)
	assert.Equal(t, "classroom-service", a.Source)
	assert.Equal(t, "1.0", a.Version)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}

func TestWatermillEventPublisher_Publish(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "classroom-events")
	require.NoError(t, err)

	publisher := NewWatermillEventPublisher(pubSub, "classroom-events", discardLogger())
	score := 5
	event := NewSubmissionCreatedEvent(SubmissionCreatedEvent{
		SubmissionID: 7,
		QuizID:       3,
		QuizTitle:    "Fractions",
		StudentID:    12,
		Graded:       true,
		TotalScore:   &score,
	})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventSubmissionCreated), msg.Metadata.Get("event_type"))
		assert.Equal(t, "classroom-service", msg.Metadata.Get("source"))

		var decoded struct {
			Type EventType              `json:"type"`
			Data SubmissionCreatedEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, EventSubmissionCreated, decoded.Type)
		assert.Equal(t, uint(7), decoded.Data.SubmissionID)
		require.NotNil(t, decoded.Data.TotalScore)
		assert.Equal(t, 5, *decoded.Data.TotalScore)
	case <-ctx.Done():
		t.Fatal("timed out waiting for published message")
	}
}

func TestMockEventPublisher(t *testing.T) {
	m := NewMockEventPublisher(discardLogger())
	ctx := context.Background()

	require.NoError(t, m.Publish(ctx, NewQuizToggledEvent(QuizToggledEvent{QuizID: 1, IsActive: false})))
	require.NoError(t, m.Publish(ctx, NewDataResetEvent(DataResetEvent{ActorID: 2})))

	assert.Len(t, m.GetPublishedEvents(), 2)
	assert.Len(t, m.EventsOfType(EventDataReset), 1)

	m.ClearEvents()
	assert.Empty(t, m.GetPublishedEvents())
	assert.NoError(t, m.Close())
}

func TestNoopEventPublisher_KeepsNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewNoopEventPublisher(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		require.NoError(t, p.Publish(ctx, NewQuizToggledEvent(QuizToggledEvent{QuizID: uint(i), IsActive: true})))
	}

	assert.Equal(t, NoopEventPublisher{logger: p.logger}, *p)
	assert.Contains(t, buf.String(), "Discarded event")
	assert.NoError(t, p.Close())
}
