// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/logger"
)

// ANSI colours for event traces on a console log
const (
	CoReset = "\x1b[0m"

	CoGreen  = "\x1b[32m"
	CoYellow = "\x1b[33m"
	CoBlue   = "\x1b[34m"
	CoCyan   = "\x1b[36m"

	CoLightRed = "\x1b[91m"
)

// LogInfo - message at info level in a colour
func LogInfo(log *logger.L, color string, message string) {
	log.Infof("%s%s%s", color, message, CoReset)
}

// LogWarn - message at warn level in a colour
func LogWarn(log *logger.L, color string, message string) {
	log.Warnf("%s%s%s", color, message, CoReset)
}
