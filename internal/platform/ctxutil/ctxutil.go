// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values (request ID, logger, listener
// identity) through [context.Context].
//
// Keys are an unexported type, so no other package can read or overwrite them.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/kahani/internal/platform/sec"
)

type key int

const (
	keyRequestID key = iota
	keyLogger
	keyListener
)

func value[T any](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

// # Request Tracing

// WithRequestID attaches the correlation ID minted by the RequestID middleware.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// GetRequestID returns the correlation ID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := value[string](ctx, keyRequestID)
	return id
}

// # Structured Logging

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger returns the request-scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := value[*slog.Logger](ctx, keyLogger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Listener Identity

// WithAuthUser attaches verified identity claims.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, keyListener, user)
}

// GetAuthUser returns the verified claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := value[*sec.AuthClaims](ctx, keyListener)
	return claims
}

// UserID returns the verified listener id, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
