package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/stopgame/internal/game/coordinator"
	"github.com/mcdev12/stopgame/internal/gameerr"
	"github.com/mcdev12/stopgame/internal/models"
)

// stubAPI returns canned results per method; unset methods succeed with
// zero values.
type stubAPI struct {
	createGame func(string) (*models.Game, *models.Player, error)
	joinGame   func(string, string) (*models.Game, *models.Player, error)
	startGame  func(uuid.UUID, uuid.UUID) (*models.Round, error)
	endGame    func(uuid.UUID, uuid.UUID) error
	submit     func(uuid.UUID, uuid.UUID, models.AnswerSet) error
	castVote   func(uuid.UUID, uuid.UUID, string, uuid.UUID, bool) error
	finalize   func(uuid.UUID, uuid.UUID) error
	getState   func(string) (*coordinator.GameState, error)
}

func (s *stubAPI) CreateGame(_ context.Context, hostName string) (*models.Game, *models.Player, error) {
	if s.createGame != nil {
		return s.createGame(hostName)
	}
	return &models.Game{}, &models.Player{}, nil
}

func (s *stubAPI) JoinGame(_ context.Context, code, playerName string) (*models.Game, *models.Player, error) {
	if s.joinGame != nil {
		return s.joinGame(code, playerName)
	}
	return &models.Game{}, &models.Player{}, nil
}

func (s *stubAPI) StartGame(_ context.Context, gameID, playerID uuid.UUID) (*models.Round, error) {
	if s.startGame != nil {
		return s.startGame(gameID, playerID)
	}
	return &models.Round{}, nil
}

func (s *stubAPI) EndGame(_ context.Context, gameID, playerID uuid.UUID) error {
	if s.endGame != nil {
		return s.endGame(gameID, playerID)
	}
	return nil
}

func (s *stubAPI) GetGameState(_ context.Context, gameID uuid.UUID) (*coordinator.GameState, error) {
	return &coordinator.GameState{}, nil
}

func (s *stubAPI) GetGameStateByCode(_ context.Context, code string) (*coordinator.GameState, error) {
	if s.getState != nil {
		return s.getState(code)
	}
	return &coordinator.GameState{}, nil
}

func (s *stubAPI) SubmitAnswers(_ context.Context, roundID, playerID uuid.UUID, answers models.AnswerSet) error {
	if s.submit != nil {
		return s.submit(roundID, playerID, answers)
	}
	return nil
}

func (s *stubAPI) CastVote(_ context.Context, roundID, voterID uuid.UUID, category string, subjectID uuid.UUID, isValid bool) error {
	if s.castVote != nil {
		return s.castVote(roundID, voterID, category, subjectID, isValid)
	}
	return nil
}

func (s *stubAPI) FinalizeVoting(_ context.Context, roundID, playerID uuid.UUID) error {
	if s.finalize != nil {
		return s.finalize(roundID, playerID)
	}
	return nil
}

func doRequest(t *testing.T, api GameAPI, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewService(api).Routes()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateGameReturnsCreated(t *testing.T) {
	gameID := uuid.New()
	api := &stubAPI{
		createGame: func(hostName string) (*models.Game, *models.Player, error) {
			if hostName != "ana" {
				t.Errorf("host name = %q, want ana", hostName)
			}
			return &models.Game{ID: gameID, GameCode: "ABC234"}, &models.Player{Name: hostName}, nil
		},
	}

	rec := doRequest(t, api, http.MethodPost, "/api/games", `{"host_name":"ana"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body)
	}

	var resp gameResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Game.GameCode != "ABC234" {
		t.Errorf("game code = %q, want ABC234", resp.Game.GameCode)
	}
}

func TestCreateGameRejectsMalformedBody(t *testing.T) {
	rec := doRequest(t, &stubAPI{}, http.MethodPost, "/api/games", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestJoinGameMapsNotFound(t *testing.T) {
	api := &stubAPI{
		joinGame: func(code, name string) (*models.Game, *models.Player, error) {
			return nil, nil, gameerr.ErrNotFound
		},
	}
	rec := doRequest(t, api, http.MethodPost, "/api/games/NOSUCH/join", `{"player_name":"bea"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestStartGameMapsPreconditionToConflict(t *testing.T) {
	api := &stubAPI{
		startGame: func(gameID, playerID uuid.UUID) (*models.Round, error) {
			return nil, gameerr.Preconditionf("game is not in the lobby")
		},
	}
	body := `{"player_id":"` + uuid.New().String() + `"}`
	rec := doRequest(t, api, http.MethodPost, "/api/games/"+uuid.New().String()+"/start", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body)
	}
}

func TestStartGameRejectsNonUUIDGame(t *testing.T) {
	body := `{"player_id":"` + uuid.New().String() + `"}`
	rec := doRequest(t, &stubAPI{}, http.MethodPost, "/api/games/ABC234/start", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitAnswersAccepted(t *testing.T) {
	var got models.AnswerSet
	api := &stubAPI{
		submit: func(roundID, playerID uuid.UUID, answers models.AnswerSet) error {
			got = answers
			return nil
		},
	}
	body := `{"player_id":"` + uuid.New().String() + `","answers":{"Animal":"ant"}}`
	rec := doRequest(t, api, http.MethodPost, "/api/rounds/"+uuid.New().String()+"/answers", body)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202; body %s", rec.Code, rec.Body)
	}
	if got["Animal"] != "ant" {
		t.Errorf("answers = %v, want Animal=ant", got)
	}
}

func TestSubmitAnswersWithoutAnswersFieldSendsEmptySet(t *testing.T) {
	var got models.AnswerSet
	api := &stubAPI{
		submit: func(roundID, playerID uuid.UUID, answers models.AnswerSet) error {
			got = answers
			return nil
		},
	}
	body := `{"player_id":"` + uuid.New().String() + `"}`
	rec := doRequest(t, api, http.MethodPost, "/api/rounds/"+uuid.New().String()+"/answers", body)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if got == nil {
		t.Error("handler passed a nil answer set; blank submissions must be explicit empties")
	}
}

func TestCastVoteMapsValidation(t *testing.T) {
	api := &stubAPI{
		castVote: func(roundID, voterID uuid.UUID, category string, subjectID uuid.UUID, isValid bool) error {
			return gameerr.Validationf("players cannot vote on their own answers")
		},
	}
	id := uuid.New().String()
	body := `{"voter_id":"` + id + `","category":"Animal","subject_id":"` + id + `","is_valid":false}`
	rec := doRequest(t, api, http.MethodPost, "/api/rounds/"+uuid.New().String()+"/votes", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body)
	}
}

func TestGetGameStateByCode(t *testing.T) {
	api := &stubAPI{
		getState: func(code string) (*coordinator.GameState, error) {
			if code != "ABC234" {
				t.Errorf("code = %q, want ABC234", code)
			}
			return &coordinator.GameState{Game: &models.Game{GameCode: code}}, nil
		},
	}
	rec := doRequest(t, api, http.MethodGet, "/api/games/ABC234", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStoreUnavailableMapsTo503(t *testing.T) {
	api := &stubAPI{
		finalize: func(roundID, playerID uuid.UUID) error {
			return gameerr.ErrStoreUnavailable
		},
	}
	body := `{"player_id":"` + uuid.New().String() + `"}`
	rec := doRequest(t, api, http.MethodPost, "/api/rounds/"+uuid.New().String()+"/finalize", body)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
