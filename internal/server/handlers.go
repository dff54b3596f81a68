package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/robotcql/robotcql/internal/cassandra"
	"github.com/robotcql/robotcql/internal/errs"
)

// --- Request / response bodies ---

type connectRequest struct {
	Hosts    []string `json:"hosts"`
	Port     int      `json:"port,omitempty"`
	Alias    string   `json:"alias,omitempty"`
	Keyspace string   `json:"keyspace,omitempty"`
	Username string   `json:"username,omitempty"`
	Password string   `json:"password,omitempty"`
}

type connectResponse struct {
	Index int `json:"index"`
}

type switchRequest struct {
	Target string `json:"target"`
}

type switchResponse struct {
	PreviousIndex int `json:"previous_index"`
}

type executeRequest struct {
	Statement string `json:"statement"`
}

type executeResponse struct {
	Rows cassandra.Rows `json:"rows"`
}

type executeAsyncResponse struct {
	PendingID string `json:"pending_id"`
}

type columnRequest struct {
	Column    string `json:"column"`
	Statement string `json:"statement"`
}

type columnResponse struct {
	Values []string `json:"values"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// --- Handlers ---

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Hosts) == 0 {
		s.writeError(w, errs.New(errs.ErrKindUnknown, "hosts is required"))
		return
	}

	cfg := s.cfg.Cassandra.SessionConfig(req.Hosts, req.Port, req.Keyspace, req.Username, req.Password)

	s.mu.Lock()
	index, err := s.lib.Connect(r.Context(), cfg, req.Alias)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, connectResponse{Index: index})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	err := s.lib.Disconnect()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloseAll(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	err := s.lib.CloseAll()
	s.mu.Unlock()
	if err != nil {
		// Teardown is best-effort; report but do not fail the request.
		s.log.ErrorWith("teardown failures during close all", err, nil)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	var req switchRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	prev, err := s.lib.Switch(req.Target)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, switchResponse{PreviousIndex: prev})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	rows, err := s.lib.Execute(r.Context(), req.Statement)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, executeResponse{Rows: rows})
}

func (s *Server) handleExecuteAsync(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if !s.decode(w, r, &req) {
		return
	}

	// The statement outlives this request, so it must not carry the
	// request's context.
	s.mu.Lock()
	pending, err := s.lib.ExecuteAsync(context.Background(), req.Statement)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := uuid.NewString()
	s.pmu.Lock()
	s.pending[id] = pending
	s.pmu.Unlock()

	s.writeJSON(w, http.StatusAccepted, executeAsyncResponse{PendingID: id})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.pmu.Lock()
	pending, ok := s.pending[id]
	s.pmu.Unlock()
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: errorBody{
			Kind:    "unknown_pending",
			Message: "no pending operation with id " + id,
		}})
		return
	}

	s.mu.Lock()
	rows, err := s.lib.GetAsyncResult(pending)
	s.mu.Unlock()

	// A resolved handle is spent either way.
	s.pmu.Lock()
	delete(s.pending, id)
	s.pmu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, executeResponse{Rows: rows})
}

func (s *Server) handleGetColumn(w http.ResponseWriter, r *http.Request) {
	var req columnRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	values, err := s.lib.GetColumn(r.Context(), req.Column, req.Statement)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, columnResponse{Values: values})
}

// --- Helpers ---

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Kind:    "bad_request",
			Message: "invalid JSON body: " + err.Error(),
		}})
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorWith("failed to encode response", err, nil)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := errs.ErrKindUnknown
	var e *errs.Error
	if errors.As(err, &e) {
		kind = e.Kind
	}

	s.writeJSON(w, statusFor(kind), errorResponse{Error: errorBody{
		Kind:    kind.String(),
		Message: err.Error(),
	}})
}

// statusFor maps error kinds to HTTP statuses.
func statusFor(kind errs.ErrKind) int {
	switch kind {
	case errs.ErrKindNoActiveConnection, errs.ErrKindDuplicateAlias:
		return http.StatusConflict
	case errs.ErrKindUnknownConnection, errs.ErrKindColumnNotFound:
		return http.StatusNotFound
	case errs.ErrKindStatementFailed:
		return http.StatusBadRequest
	case errs.ErrKindConnectionSetup, errs.ErrKindOperationFailed:
		return http.StatusBadGateway
	case errs.ErrKindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadRequest
	}
}
