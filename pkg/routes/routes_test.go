package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/DedS3t/monopoly-engine/platform/engine"
	"github.com/DedS3t/monopoly-engine/platform/lobby"
	"github.com/DedS3t/monopoly-engine/platform/queries"
	"github.com/DedS3t/monopoly-engine/platform/registry"
)

var secret = []byte("test-secret")

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (f *fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.Email] = *u
	return nil
}

func (f *fakeUsers) UserByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return models.User{}, queries.ErrNotFound
	}
	return u, nil
}

type fakeLobby struct {
	created []string
}

func (f *fakeLobby) CreateGame(_ context.Context, ownerID string, dto models.GameCreateDto) (models.Game, error) {
	f.created = append(f.created, ownerID)
	return models.Game{Id: "NEWGAME1", Name: dto.Name, Owner: ownerID, Status: models.GameStatusOpen}, nil
}

func (f *fakeLobby) Game(_ context.Context, id string) (models.Game, error) {
	if id == "done" {
		return models.Game{Id: id, Status: models.GameStatusFinished, Winner: "u1"}, nil
	}
	return models.Game{}, lobby.ErrGameNotFound
}

func (f *fakeLobby) Available(context.Context) ([]models.Game, error) { return nil, nil }

func (f *fakeLobby) Players(_ context.Context, gameID string) ([]models.Player, error) {
	if gameID != "done" {
		return nil, lobby.ErrGameNotFound
	}
	return []models.Player{{Game_id: gameID, User_id: "u1", Username: "ann"}, {Game_id: gameID, User_id: "u2", Seat: 1}}, nil
}

func (f *fakeLobby) Join(_ context.Context, gameID, userID string) (models.Player, error) {
	return models.Player{Game_id: gameID, User_id: userID}, nil
}

func (f *fakeLobby) Leave(context.Context, string, string) error { return lobby.ErrGameNotOpen }

func (f *fakeLobby) Start(context.Context, string, string) (models.GameState, error) {
	return models.GameState{}, engine.ErrNotEnoughPlayers
}

type fixedRoller struct{}

func (fixedRoller) Roll() engine.Roll { return engine.Roll{1, 2} }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestApp(t *testing.T) (*fiber.App, *registry.Registry, *fakeLobby) {
	t.Helper()
	reg := registry.New(registry.Config{TurnTimeout: time.Minute, AskTimeout: time.Second, Logger: quietLogger()}, nil, nil, nil)
	t.Cleanup(reg.Shutdown)
	lob := &fakeLobby{}

	app := fiber.New()
	Setup(app, secret,
		&controllers.AuthController{Users: &fakeUsers{users: make(map[string]models.User)}, Secret: secret, Log: quietLogger()},
		&controllers.GameController{Lobby: lob, Sessions: reg, Log: quietLogger()},
	)
	return app, reg, lob
}

func token(t *testing.T, userID string) string {
	t.Helper()
	tok := jwt.New(jwt.SigningMethodHS256)
	tok.Claims.(jwt.MapClaims)["user_id"] = userID
	s, err := tok.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func do(t *testing.T, app *fiber.App, method, path, userID, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, userID))
	}
	res, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res.StatusCode, data
}

func TestRegisterLoginCur(t *testing.T) {
	app, _, _ := newTestApp(t)
	creds := `{"email":"Ann@Example.com","pass":"hunter2"}`

	if code, _ := do(t, app, http.MethodPost, "/user/register", "", creds); code != http.StatusCreated {
		t.Fatalf("register status %d", code)
	}
	if code, _ := do(t, app, http.MethodPost, "/user/register", "", creds); code != http.StatusConflict {
		t.Fatalf("duplicate register status %d", code)
	}
	if code, _ := do(t, app, http.MethodPost, "/user/login", "", `{"email":"ann@example.com","pass":"nope"}`); code != http.StatusUnauthorized {
		t.Fatalf("bad password status %d", code)
	}

	code, body := do(t, app, http.MethodPost, "/user/login", "", creds)
	if code != http.StatusOK {
		t.Fatalf("login status %d", code)
	}
	var login struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &login); err != nil || login.AccessToken == "" {
		t.Fatalf("login body %s: %v", body, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/cur", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	res, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("cur: %v", err)
	}
	id, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK || len(id) == 0 {
		t.Fatalf("cur status %d body %q", res.StatusCode, id)
	}

	if code, _ := do(t, app, http.MethodGet, "/user/cur", "", ""); code == http.StatusOK {
		t.Fatal("cur without a token succeeded")
	}
}

func TestGameActions(t *testing.T) {
	app, reg, _ := newTestApp(t)
	seats := []engine.Seat{{Id: "u1"}, {Id: "u2"}}
	if _, err := reg.Create(context.Background(), "g1", seats, engine.WithRoller(fixedRoller{})); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if code, _ := do(t, app, http.MethodPost, "/game/g1/action", "u2", `{"type":"roll-dice"}`); code != http.StatusForbidden {
		t.Fatalf("out of turn status %d", code)
	}
	if code, _ := do(t, app, http.MethodPost, "/game/g1/action", "u1", `{"type":"dance"}`); code != http.StatusBadRequest {
		t.Fatalf("unknown action status %d", code)
	}
	if code, _ := do(t, app, http.MethodPost, "/game/g1/action", "u1", `{"type":"end-turn"}`); code != http.StatusConflict {
		t.Fatalf("wrong phase status %d", code)
	}

	code, body := do(t, app, http.MethodPost, "/game/g1/action", "u1", `{"type":"roll-dice"}`)
	if code != http.StatusOK {
		t.Fatalf("roll status %d: %s", code, body)
	}
	var state models.GameState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Phase != string(engine.PhaseAwaitingBuyDecision) || state.PendingProperty != 3 {
		t.Fatalf("unexpected state %s/%d", state.Phase, state.PendingProperty)
	}

	code, body = do(t, app, http.MethodPost, "/game/g1/action", "u1", `{"type":"buy-decision","buy":true}`)
	if code != http.StatusOK {
		t.Fatalf("buy status %d: %s", code, body)
	}
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Players[0].Balance != engine.StartingCash-60 {
		t.Fatalf("balance after buying %d", state.Players[0].Balance)
	}

	code, body = do(t, app, http.MethodGet, "/game/g1", "u2", "")
	if code != http.StatusOK || !strings.Contains(string(body), `"phase":"awaiting_end_turn"`) {
		t.Fatalf("get game %d: %s", code, body)
	}

	if code, _ := do(t, app, http.MethodPost, "/game/g1/timeout", "u3", ""); code != http.StatusForbidden {
		t.Fatalf("outsider timeout status %d", code)
	}
	code, body = do(t, app, http.MethodPost, "/game/g1/timeout", "u2", "")
	if code != http.StatusConflict {
		t.Fatalf("early timeout status %d: %s", code, body)
	}
	if state, _ := reg.Snapshot("g1"); state.CurrentPlayer != "u1" || state.Phase != string(engine.PhaseAwaitingEndTurn) {
		t.Fatalf("early timeout changed the turn: %s/%s", state.CurrentPlayer, state.Phase)
	}
}

func TestTimeoutCannotSkipFreshTurn(t *testing.T) {
	app, reg, _ := newTestApp(t)
	seats := []engine.Seat{{Id: "u1"}, {Id: "u2"}}
	if _, err := reg.Create(context.Background(), "g1", seats); err != nil {
		t.Fatalf("create session: %v", err)
	}

	code, body := do(t, app, http.MethodPost, "/game/g1/timeout", "u2", "")
	if code != http.StatusConflict || !strings.Contains(string(body), "turn deadline not reached") {
		t.Fatalf("timeout on a fresh turn %d: %s", code, body)
	}
	if state, _ := reg.Snapshot("g1"); state.CurrentPlayer != "u1" || state.Phase != string(engine.PhaseAwaitingRoll) {
		t.Fatalf("u1 lost the turn: %s/%s", state.CurrentPlayer, state.Phase)
	}
}

func TestLobbyRoutes(t *testing.T) {
	app, _, lob := newTestApp(t)

	code, body := do(t, app, http.MethodPost, "/game/create", "u1", `{"name":"friday"}`)
	if code != http.StatusCreated || len(lob.created) != 1 || lob.created[0] != "u1" {
		t.Fatalf("create %d: %s", code, body)
	}
	if code, body := do(t, app, http.MethodGet, "/game/all", "u1", ""); code != http.StatusOK || string(body) != "[]" {
		t.Fatalf("all %d: %s", code, body)
	}
	if code, _ := do(t, app, http.MethodGet, "/game/missing", "u1", ""); code != http.StatusNotFound {
		t.Fatalf("missing game status %d", code)
	}
	if code, body := do(t, app, http.MethodGet, "/game/done", "u1", ""); code != http.StatusOK || !strings.Contains(string(body), `"winner":"u1"`) {
		t.Fatalf("finished game %d: %s", code, body)
	}
	if code, body := do(t, app, http.MethodGet, "/game/done/players", "u2", ""); code != http.StatusOK || !strings.Contains(string(body), `"Username":"ann"`) {
		t.Fatalf("players %d: %s", code, body)
	}
	if code, _ := do(t, app, http.MethodGet, "/game/missing/players", "u2", ""); code != http.StatusNotFound {
		t.Fatalf("missing players status %d", code)
	}
	if code, _ := do(t, app, http.MethodPost, "/game/x/start", "u1", ""); code != http.StatusConflict {
		t.Fatalf("start status %d", code)
	}
	if code, _ := do(t, app, http.MethodPost, "/game/x/leave", "u1", ""); code != http.StatusConflict {
		t.Fatalf("leave status %d", code)
	}
	if code, _ := do(t, app, http.MethodGet, "/game/verify?code=done", "u1", ""); code != http.StatusOK {
		t.Fatalf("verify status %d", code)
	}
	if code, _ := do(t, app, http.MethodPost, "/game/create", "", `{"name":"anon"}`); code == http.StatusCreated {
		t.Fatal("create without a token succeeded")
	}
}
