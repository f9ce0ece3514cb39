package service

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/mcdev12/stopgame/internal/game/coordinator"
	"github.com/mcdev12/stopgame/internal/models"
)

type createGameRequest struct {
	HostName string `json:"host_name"`
}

type gameResponse struct {
	Game   *models.Game   `json:"game"`
	Player *models.Player `json:"player"`
}

func (s *Service) handleCreateGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	game, host, err := s.api.CreateGame(r.Context(), req.HostName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gameResponse{Game: game, Player: host})
}

type joinGameRequest struct {
	PlayerName string `json:"player_name"`
}

func (s *Service) handleJoinGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req joinGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	game, player, err := s.api.JoinGame(r.Context(), ps.ByName("game"), req.PlayerName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gameResponse{Game: game, Player: player})
}

func (s *Service) handleGetGameState(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ref := ps.ByName("game")

	var state *coordinator.GameState
	var err error
	if gameID, parseErr := uuid.Parse(ref); parseErr == nil {
		state, err = s.api.GetGameState(r.Context(), gameID)
	} else {
		state, err = s.api.GetGameStateByCode(r.Context(), ref)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type playerActionRequest struct {
	PlayerID string `json:"player_id"`
}

func (s *Service) handleStartGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID, err := parseUUIDParam(ps, "game")
	if err != nil {
		writeError(w, err)
		return
	}
	var req playerActionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	playerID, err := parseUUIDField(req.PlayerID, "player_id")
	if err != nil {
		writeError(w, err)
		return
	}

	round, err := s.api.StartGame(r.Context(), gameID, playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"round": round})
}

func (s *Service) handleEndGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID, err := parseUUIDParam(ps, "game")
	if err != nil {
		writeError(w, err)
		return
	}
	var req playerActionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	playerID, err := parseUUIDField(req.PlayerID, "player_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.api.EndGame(r.Context(), gameID, playerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

type submitAnswersRequest struct {
	PlayerID string            `json:"player_id"`
	Answers  map[string]string `json:"answers"`
}

func (s *Service) handleSubmitAnswers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roundID, err := parseUUIDParam(ps, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req submitAnswersRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	playerID, err := parseUUIDField(req.PlayerID, "player_id")
	if err != nil {
		writeError(w, err)
		return
	}
	answers := models.AnswerSet(req.Answers)
	if answers == nil {
		answers = models.AnswerSet{}
	}

	if err := s.api.SubmitAnswers(r.Context(), roundID, playerID, answers); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "submitted"})
}

type castVoteRequest struct {
	VoterID   string `json:"voter_id"`
	Category  string `json:"category"`
	SubjectID string `json:"subject_id"`
	IsValid   bool   `json:"is_valid"`
}

func (s *Service) handleCastVote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roundID, err := parseUUIDParam(ps, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req castVoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	voterID, err := parseUUIDField(req.VoterID, "voter_id")
	if err != nil {
		writeError(w, err)
		return
	}
	subjectID, err := parseUUIDField(req.SubjectID, "subject_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.api.CastVote(r.Context(), roundID, voterID, req.Category, subjectID, req.IsValid); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

func (s *Service) handleFinalizeVoting(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roundID, err := parseUUIDParam(ps, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req playerActionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	playerID, err := parseUUIDField(req.PlayerID, "player_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.api.FinalizeVoting(r.Context(), roundID, playerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "finalized"})
}
