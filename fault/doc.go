// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - typed error values shared by every splashd package
//
// errors are plain string constants grouped by class so callers can
// compare with == or test the class with IsErrInvalid and friends.
// decoding failures from the offer pipeline are wrapped in DecodeError
// to keep the stage that rejected the input.
package fault
