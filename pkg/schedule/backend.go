package schedule

import "context"

// Backend stores one Schedule per group.
//
// Get reports false when nothing is available for the group, whether it was never stored,
// cannot be decoded, or the store could not be reached. Set replaces the group's schedule
// and always reports failures.
type Backend interface {
	Get(ctx context.Context, groupId string) (Schedule, bool)
	Set(ctx context.Context, groupId string, schedule Schedule) error
}
