// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - delay requests to the rate of a limiter
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/palletd/fault"
)

// Limit - limiting for a single request
func Limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

// LimitN - limiting for a request carrying count items
//
// an empty request costs the same as a single item
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	// invalid count gets limited as a single request
	if count < 0 || count > maximumCount {
		if err := Limit(limiter); nil != err {
			return err
		}
		return fault.ErrInvalidCount
	}

	if 0 == count {
		return Limit(limiter)
	}

	r := limiter.ReserveN(time.Now(), count)
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())

	return nil
}
