package planning

import (
	"context"

	"github.com/google/uuid"
)

// PlanLogRepository stores planning outcomes. Record is append-only.
type PlanLogRepository interface {
	// Record appends a plan log.
	Record(ctx context.Context, log *PlanLog) error

	// FindByID retrieves a plan log by its request id.
	FindByID(ctx context.Context, requestID uuid.UUID) (*PlanLog, error)

	// ListAll retrieves plan logs, newest first, with pagination.
	ListAll(ctx context.Context, page, limit int) ([]*PlanLog, int64, error)

	// CountByTheme returns how many generated plans carried each theme.
	CountByTheme(ctx context.Context) (map[Theme]int64, error)
}
