// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bdrung/isa-calculator/internal/isa"
	"github.com/bdrung/isa-calculator/internal/sensor"
)

const (
	warningHeader = "X-ISA-Warning"
	cacheHeader   = "X-ISA-Cache"
)

type server struct {
	app      *app
	registry *prometheus.Registry
	// mutex guards app.settings, which "PUT /settings" replaces.
	mutex sync.RWMutex
}

func newServer(a *app) *server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		versioncollector.NewCollector("isa_calculator"),
		isa.NewCollector(a.engine),
	)
	return &server{app: a, registry: registry}
}

// addSensor exports the readings of the described sensor together with the
// atmospheric state they imply at altitudesM.
func (s *server) addSensor(sensorFlags sensor.Flags, altitudesM []float64) error {
	device, err := sensorFlags.NewSensor()
	if err != nil {
		return err
	}
	return s.registry.Register(sensor.NewCollector(device, sensorFlags, altitudesM, s.app.engine.Constants))
}

func (s *server) router(metricsPath string) *mux.Router {
	router := mux.NewRouter().StrictSlash(false)
	router.Path("/calculate").HandlerFunc(s.handleCalculate).Methods(http.MethodGet)
	router.Path("/last").HandlerFunc(s.handleLast).Methods(http.MethodGet)
	router.Path("/reset").HandlerFunc(s.handleReset).Methods(http.MethodPost)
	router.Path("/settings").HandlerFunc(s.handleGetSettings).Methods(http.MethodGet)
	router.Path("/settings").HandlerFunc(s.handlePutSettings).Methods(http.MethodPut)
	router.Path(metricsPath).Handler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return router
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, text)
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f := requestFlags{
		altitude:        query.Get("altitude"),
		temperature:     query.Get("temperature"),
		pressure:        query.Get("pressure"),
		altitudeUnit:    query.Get("altitude_unit"),
		temperatureUnit: query.Get("temperature_unit"),
		pressureUnit:    query.Get("pressure_unit"),
		model:           query.Get("model"),
	}
	s.mutex.RLock()
	req, err := f.request(s.app.settings)
	s.mutex.RUnlock()
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error()+"\n")
		return
	}

	resp, err := s.app.engine.Calculate(req)
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error()+"\n")
		return
	}
	if resp.Warning != nil {
		w.Header().Set(warningHeader, resp.Warning.String())
	}
	if resp.Cached {
		w.Header().Set(cacheHeader, "hit")
	} else {
		w.Header().Set(cacheHeader, "miss")
	}
	writeText(w, http.StatusOK, resp.Text)
}

func (s *server) handleLast(w http.ResponseWriter, _ *http.Request) {
	last := s.app.engine.Last()
	if last == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeText(w, http.StatusOK, last)
}

func (s *server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.app.engine.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	printSettings(w, s.app.store.Path, s.app.settings)
}

func (s *server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, err.Error()+"\n")
		return
	}
	f := settingsFlags{
		gravity:         r.Form.Get("gravity"),
		gasConstant:     r.Form.Get("gas_constant"),
		altitudeUnit:    r.Form.Get("altitude_unit"),
		temperatureUnit: r.Form.Get("temperature_unit"),
		pressureUnit:    r.Form.Get("pressure_unit"),
		model:           r.Form.Get("model"),
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	updated, err := f.apply(s.app.settings)
	if err != nil {
		writeText(w, http.StatusBadRequest, err.Error()+"\n")
		return
	}
	if err := saveSettings(s.app, updated); err != nil {
		writeText(w, http.StatusInternalServerError, err.Error()+"\n")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	printSettings(w, s.app.store.Path, s.app.settings)
}

func newServeCmd(opts *options) *cobra.Command {
	var (
		listenAddress string
		metricsPath   string
		altitudesM    []float64
	)
	serveCmd := &cobra.Command{
		Use:   "serve [SENSOR...]",
		Short: "serve calculations over HTTP and expose Prometheus metrics",
		Long: "Serve calculations over HTTP and expose Prometheus metrics.\n\n" +
			"Each SENSOR (e.g. BME280,bus=1,address=0x76,temp_offset=-0.5) is polled on every scrape\n" +
			"and its readings are exported together with the model state at the given altitudes.",
		RunE: func(_ *cobra.Command, args []string) error {
			sensors, err := sensor.ParseAll(args)
			if err != nil {
				return err
			}

			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			s := newServer(a)
			for _, flags := range sensors {
				if err := s.addSensor(flags, altitudesM); err != nil {
					return err
				}
			}

			logrus.Infof(
				"Serving ISA calculator on %s - for example http://localhost%s/calculate?altitude=1000&temperature=15&pressure=1013.25",
				listenAddress,
				listenAddress,
			)
			logrus.Infof("Metrics are exposed on %s%s", listenAddress, metricsPath)
			handler := handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(os.Stdout, s.router(metricsPath)))
			return http.ListenAndServe(listenAddress, handler)
		},
	}
	flags := serveCmd.Flags()
	flags.StringVar(&listenAddress, "web.listen-address", ":9776",
		"Address on which to expose metrics and web interface.")
	flags.StringVar(&metricsPath, "web.telemetry-path", "/metrics", "Path under which to expose metrics.")
	flags.Float64SliceVar(&altitudesM, "altitude", []float64{0},
		"Altitudes in meters at which to export the model state for each sensor.")
	return serveCmd
}
