package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewID_Format(t *testing.T) {
	now := time.UnixMilli(1718000000123)
	id := NewID(now)

	assert.Regexp(t, regexp.MustCompile(`^1718000000123-[0-9a-f]{8}$`), id)
}

func TestNewID_UniqueWithinSameMillisecond(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		seen[NewID(now)] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}
