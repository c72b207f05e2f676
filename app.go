// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/bdrung/isa-calculator/internal/audit"
	"github.com/bdrung/isa-calculator/internal/isa"
	"github.com/bdrung/isa-calculator/internal/settings"
)

// app bundles the collaborators every command works with.
type app struct {
	store    *settings.Store
	settings settings.Settings
	audit    *audit.Log
	engine   *isa.Engine
}

func openApp(opts *options) (*app, error) {
	path := opts.settingsPath
	if path == "" {
		var err error
		path, err = settings.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	store := settings.NewStore(path)
	loaded, loadErr := store.Load()
	if loadErr != nil {
		logrus.Warn(loadErr)
	}

	logDir := opts.logDir
	if logDir == "" {
		logDir = filepath.Dir(path)
	}
	auditLog := audit.Open(logDir)
	if loadErr != nil {
		auditLog.Printf("failed to load settings: %v", loadErr)
	}

	engine, err := isa.NewEngine(
		loaded.Constants(),
		isa.WithCacheSize(opts.cacheSize),
		isa.WithEventSink(eventSink(auditLog)),
	)
	if err != nil {
		auditLog.Close()
		return nil, err
	}
	return &app{store: store, settings: loaded, audit: auditLog, engine: engine}, nil
}

// eventSink sends engine events to the audit log and, at debug level, to
// the console.
func eventSink(auditLog *audit.Log) isa.EventSink {
	return isa.EventSinkFunc(func(e isa.Event) {
		auditLog.Event(e)
		logrus.WithField("event", string(e.Kind)).Debug(e.Msg)
	})
}

func (a *app) Close() error {
	return a.audit.Close()
}
