package milestone

import "context"

// MilestoneRepository defines persistence operations for milestone data.
type MilestoneRepository interface {
	ForWeek(ctx context.Context, week int) ([]Milestone, error)
	// ReplaceAll swaps the whole table for milestones and returns the row count.
	ReplaceAll(ctx context.Context, milestones []Milestone) (int, error)
}
