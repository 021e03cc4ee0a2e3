package queue

import (
	"testing"
	"time"
)

func SetAppearDelay(t *testing.T, d time.Duration) {
	previous := appearDelay
	appearDelay = d
	t.Cleanup(func() { appearDelay = previous })
}
