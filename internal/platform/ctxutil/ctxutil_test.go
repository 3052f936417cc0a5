// Copyright (c) 2026 Warehouse 21. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warehouse21/stockroom/internal/platform/ctxutil"
	"github.com/warehouse21/stockroom/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestLogger_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	custom := slog.Default().With(slog.String("scope", "test"))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Equal(t, custom, ctxutil.GetLogger(ctx))
}

func TestUser_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetUser(ctx))

	identity := &sec.Identity{UserID: 7, Username: "overseer", IsAdmin: true}
	ctx = ctxutil.WithUser(ctx, identity)

	got := ctxutil.GetUser(ctx)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.UserID)
	assert.True(t, got.IsAdmin)
}
