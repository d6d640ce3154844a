// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/splash-network/splashd/fault"
	"github.com/splash-network/splashd/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.01), 2)

	assert.Nil(t, ratelimit.Limit(limiter), "first request limited")
	assert.Nil(t, ratelimit.Limit(limiter), "second request limited")

	// the next slot is 100 s away
	assert.Equal(t, fault.RateLimiting, ratelimit.Limit(limiter), "burst exceeded")
}

func TestLimitZeroBurst(t *testing.T) {
	limiter := rate.NewLimiter(10, 0)
	assert.Equal(t, fault.RateLimiting, ratelimit.Limit(limiter), "zero burst allowed")
}
