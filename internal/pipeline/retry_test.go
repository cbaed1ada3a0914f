package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryDelay_DoublesUpToLimit(t *testing.T) {
	d := newRetryDelay(time.Millisecond, 3*time.Millisecond)

	var got []time.Duration
	for range 4 {
		got = append(got, d.next)
		assert.True(t, d.wait(context.Background()))
	}
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond, 3 * time.Millisecond}, got)

	d.reset()
	assert.Equal(t, time.Millisecond, d.next)
}

func TestRetryDelay_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := newRetryDelay(time.Hour, time.Hour)
	assert.False(t, d.wait(ctx))
	assert.Equal(t, time.Hour, d.next)
}
