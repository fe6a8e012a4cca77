package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jbvmio/scripthub/metrics"
	"github.com/jbvmio/scripthub/runner"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

const (
	msgLoadFailed      = `Failed to load scripts`
	msgScriptNotFound  = `Script file not found`
	msgExecutionFailed = `Script execution failed`
	msgRunFailed       = `Failed to run script`
)

type runRequest struct {
	ScriptPath string   `json:"scriptPath"`
	Args       []string `json:"args"`
}

type runResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
}

type errorResponse struct {
	Error   string  `json:"error"`
	Output  *string `json:"output,omitempty"`
	Details string  `json:"details,omitempty"`
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, `OK`)
}

func (a *API) handleListScripts(w http.ResponseWriter, r *http.Request) {
	scripts, err := a.scripts.ListScripts()
	metrics.RecordCatalogLoad(err == nil)
	if err != nil {
		a.logger.Error("error loading scripts", zap.Error(err))
		writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: msgLoadFailed})
		return
	}
	writeJSONResponse(w, http.StatusOK, scripts)
}

func (a *API) handleRunScript(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.runError(w, req.ScriptPath, err)
		return
	}
	if req.ScriptPath == "" {
		a.runError(w, req.ScriptPath, errors.New("scriptPath is required"))
		return
	}
	// A run with no arguments still sends "args": [].
	if req.Args == nil {
		a.runError(w, req.ScriptPath, errors.New("args is required"))
		return
	}

	res, err := a.runner.Run(req.ScriptPath, req.Args)
	switch {
	case errors.Is(err, runner.ErrScriptNotFound):
		metrics.RecordRun(metrics.OutcomeNotFound, 0)
		writeJSONResponse(w, http.StatusNotFound, errorResponse{Error: msgScriptNotFound})
	case err != nil:
		a.runError(w, req.ScriptPath, err)
	case res.Success:
		metrics.RecordRun(metrics.OutcomeSuccess, res.Duration)
		writeJSONResponse(w, http.StatusOK, runResponse{Success: true, Output: res.Output})
	default:
		metrics.RecordRun(metrics.OutcomeFailure, res.Duration)
		writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: msgExecutionFailed, Output: &res.Output})
	}
}

func (a *API) runError(w http.ResponseWriter, scriptPath string, err error) {
	a.logger.Error("error running script", zap.String(`script`, scriptPath), zap.Error(err))
	metrics.RecordRun(metrics.OutcomeError, 0)
	writeJSONResponse(w, http.StatusInternalServerError, errorResponse{Error: msgRunFailed, Details: err.Error()})
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, obj interface{}) {
	w.Header().Set("Content-Type", "application/json")
	jsonBytes, err := json.Marshal(obj)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"could not encode JSON"}`))
		return
	}
	w.WriteHeader(statusCode)
	w.Write(pretty.Pretty(jsonBytes))
}
