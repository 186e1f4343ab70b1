package events

import "time"

// Topics.
const (
	TopicPlannerEvents = "planner.events"
	TopicVenueEvents   = "venue.events"
)

// Event types.
const (
	PlanGenerated       = "plan.generated"
	VenueCatalogUpdated = "venue.catalog_updated"
)

// ServiceSource is the CloudEvent source for events this service publishes.
const ServiceSource = "service-planner"

const consumerGroupSuffix = "venue-cache"

// PlanGeneratedEvent is published after every successful planning request.
type PlanGeneratedEvent struct {
	RequestID  string    `json:"request_id"`
	UserID     string    `json:"user_id,omitempty"`
	Postcode   string    `json:"postcode"`
	PlanCount  int       `json:"plan_count"`
	Themes     []string  `json:"themes"`
	ElapsedMs  int64     `json:"elapsed_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}

// VenueCatalogUpdatedEvent signals that the venues near a postcode changed.
type VenueCatalogUpdatedEvent struct {
	Postcode   string    `json:"postcode"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ConsumerGroup returns the group id for the venue cache consumer.
func ConsumerGroup(prefix string) string {
	if prefix == "" {
		return ServiceSource + "-" + consumerGroupSuffix
	}
	return prefix + "-" + consumerGroupSuffix
}
