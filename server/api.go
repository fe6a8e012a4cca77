package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/jbvmio/scripthub"
	"github.com/jbvmio/scripthub/catalog"
	"github.com/jbvmio/scripthub/metrics"
	"github.com/jbvmio/scripthub/runner"
	"go.uber.org/zap"
)

type scriptLister interface {
	ListScripts() ([]catalog.Descriptor, error)
}

type scriptRunner interface {
	Run(scriptPath string, args []string) (*runner.Result, error)
}

// API serves the script catalog, script runs and the static frontend.
type API struct {
	httpSrv   http.Server
	wg        sync.WaitGroup
	logger    *zap.Logger
	scripts   scriptLister
	runner    scriptRunner
	publicDir string
	certFile  string
	keyFile   string
}

// NewAPI returns a new API.
func NewAPI(cfg *scripthub.Config, scripts scriptLister, run scriptRunner, L *zap.Logger) *API {
	A := &API{
		logger:    L.With(zap.String(`process`, `ScriptHub API`)),
		scripts:   scripts,
		runner:    run,
		publicDir: cfg.PublicDir,
	}
	if cfg.TLSEnabled() {
		A.certFile, A.keyFile = cfg.CertFile, cfg.KeyFile
	}
	A.makeHTTPSrv(cfg.ListenAddr())
	return A
}

// Handler returns the API router.
func (a *API) Handler() http.Handler {
	return a.httpSrv.Handler
}

// Start starts the API.
func (a *API) Start() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		var err error
		switch {
		case a.certFile != "":
			a.logger.Info("Starting ... Listening on https://" + a.httpSrv.Addr)
			err = a.httpSrv.ListenAndServeTLS(a.certFile, a.keyFile)
		default:
			a.logger.Info("Starting ... Listening on http://" + a.httpSrv.Addr)
			err = a.httpSrv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("http server encountered an error", zap.Error(err))
		}
		a.logger.Info("HTTP Server Stopped.")
	}()
}

// Stop stops the API. Runs still in flight are given five seconds to finish;
// their child processes are not killed.
func (a *API) Stop() {
	a.logger.Info("Stopping ...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := a.httpSrv.Shutdown(ctx); err != nil {
		a.logger.Error("error shutting down", zap.Error(err))
	}
	a.wg.Wait()
	a.logger.Info("All Processes Stopped.")
}

func (a *API) makeHTTPSrv(addr string) {
	r := mux.NewRouter()
	r.Use(a.observe)
	r.HandleFunc(`/status`, handleStatus).Methods(http.MethodGet)
	r.Handle(`/metrics`, metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix(`/api`).Subrouter()
	api.HandleFunc(`/scripts`, a.handleListScripts).Methods(http.MethodGet)
	api.HandleFunc(`/run-script`, a.handleRunScript).Methods(http.MethodPost)

	r.PathPrefix(`/`).Handler(http.FileServer(http.Dir(a.publicDir)))

	// WriteTimeout stays zero: a run holds its response open until the script exits.
	a.httpSrv = http.Server{
		Handler:     r,
		Addr:        addr,
		ReadTimeout: 30 * time.Second,
		TLSConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
	}
}
