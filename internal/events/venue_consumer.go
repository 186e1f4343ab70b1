package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/babygenie/service-planner/internal/platform/kafka"
)

// CacheInvalidator drops cached venue candidates for a location.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, location string) error
}

// VenueEventConsumer listens to venue events and busts the candidate cache.
type VenueEventConsumer struct {
	consumer *kafka.Consumer
	cache    CacheInvalidator
	logger   *zap.Logger
}

// NewVenueEventConsumer creates a new VenueEventConsumer.
func NewVenueEventConsumer(
	brokers []string,
	groupID string,
	cache CacheInvalidator,
	logger *zap.Logger,
) *VenueEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicVenueEvents, logger)
	return &VenueEventConsumer{
		consumer: consumer,
		cache:    cache,
		logger:   logger,
	}
}

// Start begins consuming venue events. This blocks until the context is cancelled.
func (c *VenueEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.HandleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *VenueEventConsumer) Close() error {
	return c.consumer.Close()
}

// HandleMessage processes one raw message. Malformed input is logged and skipped.
func (c *VenueEventConsumer) HandleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from venue topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case VenueCatalogUpdated:
		return c.handleCatalogUpdated(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled venue event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *VenueEventConsumer) handleCatalogUpdated(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt VenueCatalogUpdatedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse VenueCatalogUpdatedEvent data",
			zap.Error(err),
		)
		return nil
	}
	if evt.Postcode == "" {
		c.logger.Debug("ignoring catalog update without postcode")
		return nil
	}

	if err := c.cache.Invalidate(ctx, evt.Postcode); err != nil {
		c.logger.Error("failed to invalidate venue cache",
			zap.String("postcode", evt.Postcode),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("venue cache invalidated",
		zap.String("postcode", evt.Postcode),
	)
	return nil
}
