package planning

import (
	"time"

	"github.com/google/uuid"
)

// PlanLog is the persisted record of one planning request.
type PlanLog struct {
	requestID uuid.UUID
	userID    string
	input     PlanningInput
	plans     PlanSet
	elapsedMs int64
	createdAt time.Time
}

// NewPlanLog records the outcome of a planning request.
func NewPlanLog(requestID uuid.UUID, input PlanningInput, plans PlanSet, elapsedMs int64) *PlanLog {
	return &PlanLog{
		requestID: requestID,
		userID:    input.UserID,
		input:     input,
		plans:     plans,
		elapsedMs: elapsedMs,
		createdAt: time.Now().UTC(),
	}
}

// ReconstructPlanLog rebuilds a PlanLog from persistence data (no validation).
func ReconstructPlanLog(
	requestID uuid.UUID,
	userID string,
	input PlanningInput,
	plans PlanSet,
	elapsedMs int64,
	createdAt time.Time,
) *PlanLog {
	return &PlanLog{
		requestID: requestID,
		userID:    userID,
		input:     input,
		plans:     plans,
		elapsedMs: elapsedMs,
		createdAt: createdAt,
	}
}

func (l *PlanLog) RequestID() uuid.UUID { return l.requestID }
func (l *PlanLog) UserID() string       { return l.userID }
func (l *PlanLog) Input() PlanningInput { return l.input }
func (l *PlanLog) Plans() PlanSet       { return l.plans }
func (l *PlanLog) PlanCount() int       { return len(l.plans.Plans) }
func (l *PlanLog) ElapsedMs() int64     { return l.elapsedMs }
func (l *PlanLog) CreatedAt() time.Time { return l.createdAt }
