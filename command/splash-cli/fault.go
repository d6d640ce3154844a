// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/splash-network/splashd/fault"
)

// common errors - keep in alphabetic order
var (
	errOfferSource = fault.InvalidError("exactly one of --offer or --file is required")
)
