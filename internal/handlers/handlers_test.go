package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/ticklist/internal/models"
	"github.com/trentd187/ticklist/internal/testutil"
)

// captureLogs points the default slog logger at a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func newCragApp(repo Repository[models.Crag]) *fiber.App {
	app := fiber.New()
	app.Get("/crags", List(repo))
	app.Post("/crags", Create(repo))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestList_EmptyTable(t *testing.T) {
	app := newCragApp(testutil.NewCrags())

	status, body := doRequest(t, app, "GET", "/crags", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
}

// nilRepo returns a nil slice without error, which must still encode as [].
type nilRepo struct{}

func (nilRepo) List(context.Context) ([]models.Crag, error) { return nil, nil }

func (nilRepo) Insert(context.Context, uuid.UUID, models.Crag) error { return nil }

func TestList_NilRowsEncodeAsArray(t *testing.T) {
	app := newCragApp(nilRepo{})

	status, body := doRequest(t, app, "GET", "/crags", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
}

func TestList_ReturnsRows(t *testing.T) {
	repo := testutil.NewCrags()
	app := newCragApp(repo)

	status, _ := doRequest(t, app, "POST", "/crags", `{"name":"Peak District","location":"UK"}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, app, "GET", "/crags", "")
	require.Equal(t, http.StatusOK, status)

	var crags []models.Crag
	require.NoError(t, json.Unmarshal([]byte(body), &crags))
	require.Len(t, crags, 1)
	assert.Equal(t, "Peak District", crags[0].Name)
	assert.Equal(t, "UK", crags[0].Location)
	assert.Equal(t, repo.IDs()[0], crags[0].ID)
	assert.Equal(t, uuid.Version(7), crags[0].ID.Version())
}

func TestList_DatabaseErrorIsOpaque500(t *testing.T) {
	logs := captureLogs(t)
	repo := testutil.NewCrags()
	repo.Err = errors.Wrap(errors.New("connection refused"), "SELECT * FROM crag")
	app := newCragApp(repo)

	status, body := doRequest(t, app, "GET", "/crags", "")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, body)
	assert.NotContains(t, body, "connection refused")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "internal server error", entry["msg"])
	assert.Equal(t, "SELECT * FROM crag: connection refused", entry["error"])
	assert.Contains(t, entry["backtrace"], "TestList_DatabaseErrorIsOpaque500")
	assert.Equal(t, "/crags", entry["path"])
}

func TestCreate_IgnoresClientID(t *testing.T) {
	repo := testutil.NewCrags()
	app := newCragApp(repo)
	clientID := uuid.New()

	status, body := doRequest(t, app, "POST", "/crags",
		`{"id":"`+clientID.String()+`","name":"Stanage","location":"UK"}`)

	assert.Equal(t, http.StatusCreated, status)
	assert.Empty(t, body)
	require.Len(t, repo.IDs(), 1)
	assert.NotEqual(t, clientID, repo.IDs()[0])
}

func TestCreate_MalformedClientIDIsRejected(t *testing.T) {
	repo := testutil.NewCrags()
	app := newCragApp(repo)

	status, _ := doRequest(t, app, "POST", "/crags", `{"id":"not-a-uuid","name":"Stanage","location":"UK"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Zero(t, repo.Len())
}

func TestCreate_NotIdempotentAndTimeOrdered(t *testing.T) {
	repo := testutil.NewCrags()
	app := newCragApp(repo)

	for i := 0; i < 3; i++ {
		status, _ := doRequest(t, app, "POST", "/crags", `{"name":"Stanage","location":"UK"}`)
		require.Equal(t, http.StatusCreated, status)
	}

	ids := repo.IDs()
	require.Len(t, ids, 3)
	assert.NotEqual(t, ids[0], ids[1])
	assert.NotEqual(t, ids[1], ids[2])
	// UUIDv7 strings sort in creation order.
	assert.Less(t, ids[0].String(), ids[1].String())
	assert.Less(t, ids[1].String(), ids[2].String())
}

func TestCreate_ClientErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"syntax error", `{"name":`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
		{"not an object", `["Stanage","UK"]`, http.StatusUnprocessableEntity},
		{"null body", `null`, http.StatusUnprocessableEntity},
		{"missing field", `{"name":"Stanage"}`, http.StatusUnprocessableEntity},
		{"null field", `{"name":"Stanage","location":null}`, http.StatusUnprocessableEntity},
		{"unknown field", `{"name":"Stanage","location":"UK","grade":"E1"}`, http.StatusUnprocessableEntity},
		{"wrong type", `{"name":"Stanage","location":42}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewCrags()
			app := newCragApp(repo)

			status, _ := doRequest(t, app, "POST", "/crags", tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Zero(t, repo.Len(), "no row may be persisted on a client error")
		})
	}
}

func TestCreate_DatabaseErrorIsOpaque500(t *testing.T) {
	logs := captureLogs(t)
	repo := testutil.NewCrags()
	repo.Err = errors.Wrap(errors.New(`violates foreign key constraint "route_crag_id_fkey"`), "INSERT INTO route")
	app := newCragApp(repo)

	status, body := doRequest(t, app, "POST", "/crags", `{"name":"Stanage","location":"UK"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, body)
	assert.Contains(t, logs.String(), "foreign key")
}

func TestCreate_RouteAndAscent(t *testing.T) {
	routes := testutil.NewRoutes()
	ascents := testutil.NewAscents()
	app := fiber.New()
	app.Post("/routes", Create[models.Route](routes))
	app.Post("/ascents", Create[models.Ascent](ascents))
	app.Get("/ascents", List[models.Ascent](ascents))

	cragID := uuid.New()
	status, _ := doRequest(t, app, "POST", "/routes", `{"crag_id":"`+cragID.String()+`","name":"Flying Buttress"}`)
	require.Equal(t, http.StatusCreated, status)

	routeID := routes.IDs()[0]
	status, _ = doRequest(t, app, "POST", "/ascents", `{"route_id":"`+routeID.String()+`","date":"2024-05-12"}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := doRequest(t, app, "GET", "/ascents", "")
	require.Equal(t, http.StatusOK, status)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 1)
	assert.Equal(t, routeID.String(), got[0]["route_id"])
	assert.Equal(t, "2024-05-12", got[0]["date"])
	assert.Equal(t, ascents.IDs()[0].String(), got[0]["id"])

	t.Run("bad date", func(t *testing.T) {
		status, _ := doRequest(t, app, "POST", "/ascents", `{"route_id":"`+routeID.String()+`","date":"12/05/2024"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("bad reference uuid", func(t *testing.T) {
		status, _ := doRequest(t, app, "POST", "/routes", `{"crag_id":"nope","name":"x"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})
}

func TestReady(t *testing.T) {
	app := fiber.New()
	app.Get("/", Ready)

	status, body := doRequest(t, app, "GET", "/", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body)
}
