package repo

import "time"

// AdjustmentFilter narrows an adjustment history query by time range and page.
type AdjustmentFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}
