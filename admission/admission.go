// Package admission implements the HTTP surface external callers use
// to kick off a program run: a single POST endpoint that loads a
// challenge and hands it to the engine.
package admission

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/raidreplay/tobengine/analyzer"
	"github.com/raidreplay/tobengine/log"
	"github.com/raidreplay/tobengine/types"
)

// defaultLevel is applied to every admitted run, since the request
// schema carries no effort-level field of its own.
const defaultLevel = analyzer.LevelBasic

// analyzeRequest is the JSON body POST /analyze expects.
type analyzeRequest struct {
	Program string `json:"program"`
	UUID    string `json:"uuid"`
}

// ChallengeLoader is the subset of *challenge.Loader the handler
// needs, narrowed to an interface so tests don't need a real
// database/backend pair.
type ChallengeLoader interface {
	Load(ctx context.Context, id uuid.UUID) (*types.Challenge, error)
}

// ProgramRunner is the subset of *engine.Engine the handler needs.
type ProgramRunner interface {
	RunProgram(programName string, level analyzer.Level, challenge *types.Challenge) error
}

// Handler serves the admission HTTP surface.
type Handler struct {
	Engine ProgramRunner
	Loader ChallengeLoader
	Logger *log.Logger
}

func NewHandler(e ProgramRunner, loader ChallengeLoader, logger *log.Logger) *Handler {
	return &Handler{Engine: e, Loader: loader, Logger: logger}
}

// Routes registers the handler's endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /analyze", h.handleAnalyze)
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(req.UUID)
	if err != nil {
		http.Error(w, "malformed uuid", http.StatusBadRequest)
		return
	}

	loaded, err := h.Loader.Load(r.Context(), id)
	if err != nil {
		h.Logger.Warnw("failed to load challenge for analysis", "uuid", req.UUID, "error", err)
		http.Error(w, "challenge not found", http.StatusNotFound)
		return
	}

	if err := h.Engine.RunProgram(req.Program, defaultLevel, loaded); err != nil {
		http.Error(w, "unknown program: "+req.Program, http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
