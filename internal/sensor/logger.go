// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package sensor

import logger "github.com/d2r2/go-logger"

var lg = logger.NewPackageLogger("sensor", logger.InfoLevel)

// SetLogLevel changes the log level of the sensor package and the I2C
// driver packages it uses.
func SetLogLevel(level logger.LogLevel) {
	for _, pkg := range []string{"sensor", "bsbmp", "i2c", "sht3x"} {
		logger.ChangePackageLogLevel(pkg, level)
	}
}
