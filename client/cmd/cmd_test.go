package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/scripts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"Backup","description":"Backs up data","scriptPath":"scripts/backup.js","arguments":[]}]`))
	}))
	defer server.Close()

	out, _, err := execute(t, "list", "--url", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Backup")
	assert.Contains(t, out, "scripts/backup.js")
	assert.Contains(t, out, "Backs up data")
	assert.NotContains(t, out, `"Backup"`)
}

func TestListCommand_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to load scripts"}`))
	}))
	defer server.Close()

	_, _, err := execute(t, "list", "--url", server.URL)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Failed to load scripts", apiErr.Message)
}

func TestRunCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/run-script", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req runRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "scripts/hello.sh", req.ScriptPath)
		assert.Equal(t, []string{"--name", "world"}, req.Args)

		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "output": "hello world\n"})
	}))
	defer server.Close()

	out, errOut, err := execute(t, "run", "--url", server.URL, "scripts/hello.sh", "--", "--name", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
	assert.Contains(t, errOut, "scripts/hello.sh completed")
}

func TestRunCommand_ExecutionFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Script execution failed", "output": "boom\n"})
	}))
	defer server.Close()

	out, errOut, err := execute(t, "run", "--url", server.URL, "scripts/boom.sh")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "boom\n")
	assert.Contains(t, errOut, "Script execution failed")
}

func TestRunCommand_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Script file not found"}`))
	}))
	defer server.Close()

	_, _, err := execute(t, "run", "--url", server.URL, "nope.sh")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "API error (404): Script file not found", apiErr.Error())
}

func TestRunCommand_RequiresScriptPath(t *testing.T) {
	_, _, err := execute(t, "run", "--url", "http://127.0.0.1:1")
	require.Error(t, err)
}

func TestScriptClient_RunSendsEmptyArgsArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.JSONEq(t, `[]`, string(raw["args"]))
		w.Write([]byte(`{"success":true,"output":""}`))
	}))
	defer server.Close()

	out, err := NewScriptClient(server.URL+"/").RunScript("a.sh", nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeAPIError_NonJSONBody(t *testing.T) {
	err := decodeAPIError(http.StatusBadGateway, []byte("bad gateway\n"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.Equal(t, "API error (502): bad gateway", apiErr.Error())
}
