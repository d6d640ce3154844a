// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - load a splashd Lua configuration into a struct
//
// the script must return a single table; its keys are mapped onto the
// target with gluamapper tags. arg[0] holds the script path so the
// configuration can locate key and dictionary files next to itself.
package configuration
