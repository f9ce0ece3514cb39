// Package service exposes the coordinator over a JSON HTTP API. Handlers
// do request parsing and error mapping only; all game rules live in the
// coordinator.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/mcdev12/stopgame/internal/game/coordinator"
	"github.com/mcdev12/stopgame/internal/gameerr"
	"github.com/mcdev12/stopgame/internal/models"
	"github.com/rs/zerolog/log"
)

// GameAPI defines what the service needs from the coordinator.
type GameAPI interface {
	CreateGame(ctx context.Context, hostName string) (*models.Game, *models.Player, error)
	JoinGame(ctx context.Context, code, playerName string) (*models.Game, *models.Player, error)
	StartGame(ctx context.Context, gameID, playerID uuid.UUID) (*models.Round, error)
	EndGame(ctx context.Context, gameID, playerID uuid.UUID) error
	GetGameState(ctx context.Context, gameID uuid.UUID) (*coordinator.GameState, error)
	GetGameStateByCode(ctx context.Context, code string) (*coordinator.GameState, error)
	SubmitAnswers(ctx context.Context, roundID, playerID uuid.UUID, answers models.AnswerSet) error
	CastVote(ctx context.Context, roundID, voterID uuid.UUID, category string, subjectID uuid.UUID, isValid bool) error
	FinalizeVoting(ctx context.Context, roundID, playerID uuid.UUID) error
}

// Service is the HTTP transport for the game API.
type Service struct {
	api GameAPI
}

// NewService creates the HTTP service.
func NewService(api GameAPI) *Service {
	return &Service{api: api}
}

// Routes returns the configured router.
func (s *Service) Routes() *httprouter.Router {
	router := httprouter.New()

	// The :game segment is a join code for lobby-facing routes and a
	// game UUID once play has started.
	router.POST("/api/games", s.handleCreateGame)
	router.POST("/api/games/:game/join", s.handleJoinGame)
	router.GET("/api/games/:game", s.handleGetGameState)
	router.POST("/api/games/:game/start", s.handleStartGame)
	router.POST("/api/games/:game/end", s.handleEndGame)

	router.POST("/api/rounds/:id/answers", s.handleSubmitAnswers)
	router.POST("/api/rounds/:id/votes", s.handleCastVote)
	router.POST("/api/rounds/:id/finalize", s.handleFinalizeVoting)

	return router
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the error taxonomy onto HTTP statuses: validation is
// 400, missing rows are 404, lost guarded transitions are 409, and
// store trouble is 503.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, gameerr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, gameerr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, gameerr.ErrPreconditionFailed):
		status = http.StatusConflict
	case errors.Is(err, gameerr.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return gameerr.Validationf("invalid request body: %v", err)
	}
	return nil
}

func parseUUIDParam(ps httprouter.Params, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ps.ByName(name))
	if err != nil {
		return uuid.Nil, gameerr.Validationf("invalid %s: %v", name, err)
	}
	return id, nil
}

func parseUUIDField(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, gameerr.Validationf("invalid %s: %v", name, err)
	}
	return id, nil
}
