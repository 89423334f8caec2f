// Copyright (C) 2025 Ag Linings
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package middleware provides HTTP middleware for the modeler service:
// per-client rate limiting and CORS headers for the browser editor.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Ag-Linings/uml-diagram/services/modeler/observability"
)

// clientLimiter pairs a token bucket with its last-use time so idle
// clients can be evicted.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP.
//
// Extraction is cheap but unauthenticated, so a single misbehaving
// client could otherwise starve the service. Buckets idle longer than
// the eviction window are dropped to bound memory.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter

	rps     rate.Limit
	burst   int
	maxIdle time.Duration
	metrics *observability.ModelerMetrics
}

// NewRateLimiter creates a limiter allowing rps requests per second with
// the given burst per client IP. metrics may be nil.
func NewRateLimiter(rps float64, burst int, metrics *observability.ModelerMetrics) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
		maxIdle: 10 * time.Minute,
		metrics: metrics,
	}
}

// Handler returns the Gin middleware. Rejected requests get 429 with a
// JSON error body.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			rl.metrics.RecordRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// allow reports whether the client may proceed, creating its bucket on
// first sight.
func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, ok := rl.clients[clientIP]
	if !ok {
		// lastSeen must be set before the eviction sweep runs, or the
		// fresh bucket is seen as idle since the zero time and dropped.
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst), lastSeen: now}
		rl.clients[clientIP] = cl
		rl.evictIdleLocked(now)
	}
	cl.lastSeen = now
	return cl.limiter.Allow()
}

// evictIdleLocked drops buckets unused past the idle window. Called with
// the mutex held, only when a new client shows up.
func (rl *RateLimiter) evictIdleLocked(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > rl.maxIdle {
			delete(rl.clients, ip)
		}
	}
}
