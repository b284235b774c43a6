package bridge

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/habiliai/shopagents/agent"
	"github.com/habiliai/shopagents/entity"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/mylog"
	"github.com/habiliai/shopagents/provider"
	"github.com/habiliai/shopagents/session"
	"github.com/habiliai/shopagents/tool"
)

const (
	ToolFormatManifest  = "manifest"
	ToolFormatOpenAI    = "openai"
	ToolFormatAnthropic = "anthropic"
	ToolFormatRealtime  = "realtime"
)

type (
	agentSetSummary struct {
		Key     string   `json:"key"`
		Default bool     `json:"default"`
		Agents  []string `json:"agents"`
	}

	startSessionRequest struct {
		AgentSet string `json:"agentSet"`
	}

	sessionResponse struct {
		*session.Session
		Agent entity.Agent `json:"agent"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

// NewHTTPHandler serves agent sets, tool manifests and sessions over HTTP.
func NewHTTPHandler(agents *agent.Registry, sessions *session.Manager, logger *mylog.Logger) http.Handler {
	if logger == nil {
		logger = mylog.Discard()
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	router.HandleFunc("/agent-sets", func(w http.ResponseWriter, r *http.Request) {
		sets := make([]agentSetSummary, 0)
		for _, key := range agents.Keys() {
			set, _ := agents.Get(key)
			names := make([]string, 0, len(set))
			for _, a := range set {
				names = append(names, a.Name)
			}
			sets = append(sets, agentSetSummary{
				Key:     key,
				Default: key == agents.DefaultKey(),
				Agents:  names,
			})
		}
		writeJSON(w, http.StatusOK, sets)
	}).Methods("GET")

	router.HandleFunc("/agent-sets/{key}", func(w http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)["key"]
		set, ok := agents.Get(key)
		if !ok {
			writeError(w, logger, errors.Wrapf(errors.ErrNotFound, "agent set %q", key))
			return
		}
		writeJSON(w, http.StatusOK, set)
	}).Methods("GET")

	router.HandleFunc("/agent-sets/{key}/agents/{agent}/tools", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		a, ok := agents.Agent(vars["key"], vars["agent"])
		if !ok {
			writeError(w, logger, errors.Wrapf(errors.ErrNotFound, "agent %s in set %s", vars["agent"], vars["key"]))
			return
		}

		tools, err := formatTools(a, r.URL.Query().Get("format"))
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, tools)
	}).Methods("GET")

	router.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		var req startSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, logger, errors.Wrapf(errors.ErrInvalidParams, "invalid body: %v", err))
			return
		}
		if req.AgentSet == "" {
			req.AgentSet = agents.DefaultKey()
		}

		sess, err := sessions.Start(r.Context(), req.AgentSet)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeSession(w, r.Context(), logger, sessions, sess, http.StatusCreated)
	}).Methods("POST")

	router.HandleFunc("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeSession(w, r.Context(), logger, sessions, sess, http.StatusOK)
	}).Methods("GET")

	router.HandleFunc("/sessions/{id}/tool-calls", func(w http.ResponseWriter, r *http.Request) {
		var call tool.Call
		if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
			writeError(w, logger, errors.Wrapf(errors.ErrInvalidParams, "invalid body: %v", err))
			return
		}
		if call.Name == "" {
			writeError(w, logger, errors.Wrapf(errors.ErrInvalidParams, "name is required"))
			return
		}

		result, err := sessions.HandleToolCall(r.Context(), mux.Vars(r)["id"], call)
		if result == nil {
			writeError(w, logger, err)
			return
		}
		status := http.StatusOK
		if err != nil {
			status = statusOf(err)
		}
		writeJSON(w, status, result)
	}).Methods("POST")

	router.HandleFunc("/sessions/{id}/tool-calls", func(w http.ResponseWriter, r *http.Request) {
		history, err := sessions.History(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, logger, err)
			return
		}
		if history == nil {
			history = []session.CallRecord{}
		}
		writeJSON(w, http.StatusOK, history)
	}).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.PrintRecoveryStack(true),
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)

	return cors(recovery(router))
}

func formatTools(a entity.Agent, format string) (any, error) {
	switch format {
	case "", ToolFormatManifest:
		return a.Tools, nil
	case ToolFormatOpenAI:
		return provider.ToOpenAITools(a)
	case ToolFormatAnthropic:
		return provider.ToAnthropicTools(a)
	case ToolFormatRealtime:
		return provider.RealtimeSessionUpdate(a), nil
	}
	return nil, errors.Wrapf(errors.ErrInvalidParams, "unknown tool format %q", format)
}

func writeSession(w http.ResponseWriter, ctx context.Context, logger *mylog.Logger, sessions *session.Manager, sess *session.Session, status int) {
	a, err := sessions.ActiveAgent(ctx, sess.ID)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, status, sessionResponse{Session: sess, Agent: a})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, errors.ErrToolNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrInvalidParams), errors.Is(err, errors.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, errors.ErrMissingHandler):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, logger *mylog.Logger, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", mylog.Err(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
