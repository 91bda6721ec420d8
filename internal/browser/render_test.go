package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_AppliesDefaults(t *testing.T) {
	r := New(Options{})

	assert.Equal(t, DefaultNavTimeout, r.navTimeout)
	assert.Equal(t, DefaultWaitTimeout, r.waitTimeout)
	assert.Equal(t, DefaultSettleDelay, r.settleDelay)
}

func TestNew_KeepsOverrides(t *testing.T) {
	r := New(Options{
		NavTimeout:  1,
		WaitTimeout: 2,
		SettleDelay: 3,
	})

	assert.EqualValues(t, 1, r.navTimeout)
	assert.EqualValues(t, 2, r.waitTimeout)
	assert.EqualValues(t, 3, r.settleDelay)
}

func TestRender_CancelledContextNeverLaunches(t *testing.T) {
	r := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, "https://example.com", "body")
	assert.ErrorIs(t, err, context.Canceled)
}
