// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	logger "github.com/d2r2/go-logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bdrung/isa-calculator/internal/isa"
	"github.com/bdrung/isa-calculator/internal/sensor"
	"github.com/bdrung/isa-calculator/internal/settings"
)

type options struct {
	settingsPath string
	logDir       string
	logLevel     string
	cacheSize    int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "isa-calculator",
		Short:         "calculate temperature, pressure and density of the extended ISA atmosphere",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			if level >= logrus.DebugLevel {
				sensor.SetLogLevel(logger.DebugLevel)
			} else {
				sensor.SetLogLevel(logger.InfoLevel)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.settingsPath, "settings", "",
		"Settings file (default: "+settings.FileName+" in the user configuration directory)")
	flags.StringVar(&opts.logDir, "log-dir", "",
		"Directory of the audit log (default: directory of the settings file)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warning, error)")
	flags.IntVar(&opts.cacheSize, "cache-size", isa.DefaultCacheSize, "Maximum number of cached results")

	rootCmd.AddCommand(newCalcCmd(opts), newSettingsCmd(opts), newServeCmd(opts))
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}
