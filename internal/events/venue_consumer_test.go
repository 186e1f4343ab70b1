package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/babygenie/service-planner/internal/platform/kafka"
)

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, location string) error {
	return m.Called(ctx, location).Error(0)
}

func newTestConsumer(cache CacheInvalidator) *VenueEventConsumer {
	return &VenueEventConsumer{cache: cache, logger: zap.NewNop()}
}

func eventMessage(t *testing.T, eventType string, data interface{}) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("venue-catalog", eventType, data)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Topic: TopicVenueEvents, Value: raw}
}

func TestHandleMessage_InvalidatesPostcode(t *testing.T) {
	cache := new(MockInvalidator)
	cache.On("Invalidate", mock.Anything, "SW1A 1AA").Return(nil)

	msg := eventMessage(t, VenueCatalogUpdated, VenueCatalogUpdatedEvent{Postcode: "SW1A 1AA", OccurredAt: time.Now()})
	err := newTestConsumer(cache).HandleMessage(context.Background(), msg)

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestHandleMessage_ReturnsInvalidateError(t *testing.T) {
	cache := new(MockInvalidator)
	cache.On("Invalidate", mock.Anything, "E1 6AN").Return(errors.New("redis down"))

	msg := eventMessage(t, VenueCatalogUpdated, VenueCatalogUpdatedEvent{Postcode: "E1 6AN"})
	err := newTestConsumer(cache).HandleMessage(context.Background(), msg)

	assert.Error(t, err)
}

func TestHandleMessage_SkipsWithoutInvalidating(t *testing.T) {
	tests := []struct {
		name string
		msg  func(t *testing.T) kafkago.Message
	}{
		{"malformed", func(*testing.T) kafkago.Message { return kafkago.Message{Value: []byte("{not json")} }},
		{"other type", func(t *testing.T) kafkago.Message {
			return eventMessage(t, PlanGenerated, PlanGeneratedEvent{RequestID: "x"})
		}},
		{"empty postcode", func(t *testing.T) kafkago.Message {
			return eventMessage(t, VenueCatalogUpdated, VenueCatalogUpdatedEvent{})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := new(MockInvalidator)
			err := newTestConsumer(cache).HandleMessage(context.Background(), tt.msg(t))

			assert.NoError(t, err)
			cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
		})
	}
}

func TestConsumerGroup(t *testing.T) {
	assert.Equal(t, "service-planner-venue-cache", ConsumerGroup(""))
	assert.Equal(t, "staging-venue-cache", ConsumerGroup("staging"))
}
