package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCompositeHealthChecker_NoChecks(t *testing.T) {
	status := NewCompositeHealthChecker("v1").Check(context.Background())

	assert.True(t, status.Healthy)
	assert.True(t, status.Ready)
	assert.Equal(t, "No health checks registered", status.Message)
	assert.Equal(t, "v1", status.Version)
}

func TestCompositeHealthChecker_AggregatesFailures(t *testing.T) {
	c := NewCompositeHealthChecker("v1")
	c.AddCheck("database", NewDatabaseCheck(pingFunc(func(context.Context) error { return nil })))
	c.AddCheck("zeta", func(context.Context) error { return errors.New("down") })
	c.AddCheck("alpha", func(context.Context) error { return errors.New("down") })

	status := c.Check(context.Background())

	assert.False(t, status.Healthy)
	assert.False(t, status.Ready)
	assert.Equal(t, "Some checks failed: alpha, zeta", status.Message)
	assert.True(t, status.Checks["database"].Healthy)
	assert.Equal(t, "OK", status.Checks["database"].Message)
	assert.Equal(t, "down", status.Checks["zeta"].Message)

	c.RemoveCheck("zeta")
	c.RemoveCheck("alpha")
	assert.True(t, c.Check(context.Background()).Healthy)
}

func TestCompositeHealthChecker_Timeout(t *testing.T) {
	c := NewCompositeHealthChecker("v1")
	c.SetTimeout(20 * time.Millisecond)
	c.AddCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	status := c.Check(context.Background())

	assert.False(t, status.Healthy)
	assert.Equal(t, context.DeadlineExceeded.Error(), status.Checks["slow"].Message)
}
