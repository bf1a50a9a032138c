package helper_util

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultLookback = 24 * time.Hour

// GetTimeRangeParams reads the from and to query parameters. Missing values
// default to the last 24 hours.
func GetTimeRangeParams(c *gin.Context, now time.Time) (from time.Time, to time.Time, err error) {
	to = now
	if v := c.Query("to"); v != "" {
		if to, err = ParseTime(v); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to: %w", err)
		}
	}
	from = to.Add(-defaultLookback)
	if v := c.Query("from"); v != "" {
		if from, err = ParseTime(v); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from: %w", err)
		}
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("from %s is after to %s", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	return from, to, nil
}
