package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"poker-hand-service/internal/api"
	"poker-hand-service/internal/model"
	"poker-hand-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T, migrate bool) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if migrate {
		if err := db.AutoMigrate(&model.HandRow{}); err != nil {
			t.Fatalf("failed to migrate hands table: %v", err)
		}
	}

	r := gin.New()
	api.RegisterRoutes(r, service.NewContainer(db))
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const createBody = `{
	"stack_settings": {"A": 1000, "B": 1000, "C": 1000},
	"player_roles": {"dealer": "A", "sb": "B", "bb": "C"},
	"hole_cards": {"A": ["As", "Kh"], "B": ["7d", "7c"], "C": ["Qh", "Td"]},
	"action_sequence": "r200 c c / Flop: [Ks,Qd,Jc] / b400 c c / Turn: [2h] / x x x / River: [8s] / x x x"
}`

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, true)

	w := doRequest(t, r, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" || body["message"] == "" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}

func TestCreateHand(t *testing.T) {
	r := newTestRouter(t, true)

	w := doRequest(t, r, http.MethodPost, "/hands/", createBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	var hand model.Hand
	if err := json.Unmarshal(w.Body.Bytes(), &hand); err != nil {
		t.Fatalf("failed to decode hand: %v", err)
	}
	if err := uuid.Validate(hand.ID); err != nil {
		t.Fatalf("expected a uuid id, got %q", hand.ID)
	}
	if hand.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	want := map[string]int64{"A": 200, "B": -100, "C": -100}
	for player, amount := range want {
		if hand.Winnings[player] != amount {
			t.Fatalf("winnings[%s] = %d, want %d", player, hand.Winnings[player], amount)
		}
	}
}

func TestCreateHandMissingField(t *testing.T) {
	r := newTestRouter(t, true)

	w := doRequest(t, r, http.MethodPost, "/hands/", `{"stack_settings": {"A": 1000}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateHandEmptyStackSettings(t *testing.T) {
	r := newTestRouter(t, true)

	body := `{
		"stack_settings": {},
		"player_roles": {"dealer": "A"},
		"hole_cards": {"A": ["As", "Kh"]},
		"action_sequence": "x x"
	}`
	w := doRequest(t, r, http.MethodPost, "/hands/", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
}

func TestCreateThenGetByID(t *testing.T) {
	r := newTestRouter(t, true)

	created := doRequest(t, r, http.MethodPost, "/hands/", createBody)
	if created.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", created.Code, created.Body.String())
	}
	var hand model.Hand
	if err := json.Unmarshal(created.Body.Bytes(), &hand); err != nil {
		t.Fatalf("failed to decode created hand: %v", err)
	}

	got := doRequest(t, r, http.MethodGet, "/hands/"+hand.ID, "")
	if got.Code != http.StatusOK {
		t.Fatalf("get status = %d, body: %s", got.Code, got.Body.String())
	}
	var fetched model.Hand
	if err := json.Unmarshal(got.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("failed to decode fetched hand: %v", err)
	}
	if fetched.ID != hand.ID {
		t.Fatalf("fetched id = %s, want %s", fetched.ID, hand.ID)
	}
	if fetched.Winnings["A"] != hand.Winnings["A"] {
		t.Fatalf("winnings changed across fetch: %v vs %v", fetched.Winnings, hand.Winnings)
	}
}

func TestListHands(t *testing.T) {
	r := newTestRouter(t, true)

	for i := 0; i < 2; i++ {
		if w := doRequest(t, r, http.MethodPost, "/hands/", createBody); w.Code != http.StatusCreated {
			t.Fatalf("create status = %d, body: %s", w.Code, w.Body.String())
		}
	}

	w := doRequest(t, r, http.MethodGet, "/hands/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Hands []model.Hand `json:"hands"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(body.Hands) != 2 {
		t.Fatalf("expected 2 hands, got %d", len(body.Hands))
	}
}

func TestGetHandNotFound(t *testing.T) {
	r := newTestRouter(t, true)

	w := doRequest(t, r, http.MethodGet, "/hands/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body: %s", w.Code, w.Body.String())
	}
}

func TestEndpointsWithMissingTable(t *testing.T) {
	r := newTestRouter(t, false)

	create := doRequest(t, r, http.MethodPost, "/hands/", createBody)
	if create.Code != http.StatusInternalServerError {
		t.Fatalf("create status = %d, want 500", create.Code)
	}
	if !strings.Contains(create.Body.String(), "does not exist") {
		t.Fatalf("expected a missing-table message, got: %s", create.Body.String())
	}

	list := doRequest(t, r, http.MethodGet, "/hands/", "")
	if list.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", list.Code)
	}
	var body struct {
		Hands []model.Hand `json:"hands"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(body.Hands) != 0 {
		t.Fatalf("expected empty history, got %d hands", len(body.Hands))
	}

	get := doRequest(t, r, http.MethodGet, "/hands/"+uuid.NewString(), "")
	if get.Code != http.StatusNotFound {
		t.Fatalf("get status = %d, want 404", get.Code)
	}
	if !strings.Contains(get.Body.String(), "table missing") {
		t.Fatalf("expected a table-missing annotation, got: %s", get.Body.String())
	}
}
