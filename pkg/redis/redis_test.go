package redis

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabled(t *testing.T) {
	assert.False(t, (&Config{}).Enabled())
	assert.True(t, (&Config{URL: "redis://localhost:6379"}).Enabled())
}

func TestNewRequiresURL(t *testing.T) {
	_, err := (&Config{}).New()
	assert.Error(t, err)
}

func TestNewRejectsMalformedURL(t *testing.T) {
	_, err := (&Config{URL: "://not-a-url"}).New()
	assert.Error(t, err)
}

func TestNewConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &Config{URL: fmt.Sprintf("redis://%s", mr.Addr())}
	client, err := cfg.New()
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(t.Context()).Err())
}
