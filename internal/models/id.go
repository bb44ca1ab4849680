package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a time-ordered id that stays unique when two records are
// created within the same millisecond.
func NewID(now time.Time) string {
	suffix := uuid.NewString()[:8]
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}
