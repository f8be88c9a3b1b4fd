package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/shopadmin/pkg/admin"
	"github.com/example/shopadmin/pkg/client"
	"github.com/example/shopadmin/pkg/config"
	"github.com/example/shopadmin/pkg/models"
	"github.com/example/shopadmin/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memoryAuditor struct {
	logs []*repository.AuditLog
}

func (a *memoryAuditor) Record(_ context.Context, log *repository.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

func (a *memoryAuditor) History(_ context.Context, resource, entityID string, _ int64) ([]*repository.AuditLog, error) {
	out := []*repository.AuditLog{}
	for i := len(a.logs) - 1; i >= 0; i-- {
		if a.logs[i].Service == resource && a.logs[i].EntityID == entityID {
			out = append(out, a.logs[i])
		}
	}
	return out, nil
}

func newTestGateway(t *testing.T, seed bool, logger *zap.Logger) (*Gateway, *memoryAuditor) {
	t.Helper()
	db, err := repository.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	if seed {
		require.NoError(t, repository.Seed(context.Background(), db))
	}
	audit := &memoryAuditor{}
	g := NewGateway(&config.Config{}, logger, audit)
	g.Mount(db)
	return g, audit
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	g, _ := newTestGateway(t, false, zap.NewNop())
	w := do(t, g.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var body struct {
		Status    string   `json:"status"`
		Resources []string `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.ElementsMatch(t, []string{"users", "products", "categories", "orders", "payments", "promotions", "reviews"}, body.Resources)
}

func TestListEnvelope(t *testing.T) {
	g, _ := newTestGateway(t, true, zap.NewNop())
	w := do(t, g.Handler(), http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Categories []models.Category `json:"categories"`
		Total      int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Total)
	assert.Equal(t, "Homme", body.Categories[0].Name)
}

func TestStatusCodes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	g, audit := newTestGateway(t, false, zap.New(core))
	h := g.Handler()

	w := do(t, h, http.MethodPost, "/api/categories", `{"nom":"Homme","description":"H"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	w = do(t, h, http.MethodPost, "/api/categories", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, h, http.MethodPost, "/api/categories", `{"nom":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/api/categories/1", `{"nom":"Hommes","description":"H"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodPut, "/api/categories/9", `{"nom":"x","description":"y"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"category not found"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/api/categories/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/api/categories/1/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"update"`)

	w = do(t, h, http.MethodDelete, "/api/categories/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	w = do(t, h, http.MethodDelete, "/api/categories/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Len(t, audit.logs, 3)
	assert.Positive(t, logs.FilterMessage("HTTP request").Len())
}

func TestUserPasswordNeverEchoed(t *testing.T) {
	g, _ := newTestGateway(t, false, zap.NewNop())
	w := do(t, g.Handler(), http.MethodPost, "/api/users",
		`{"nom":"Sami","email":"sami@example.tn","telephone":"1","adresse":"Bizerte","roles":["client"],"password":"s3cret","provider":"email"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "s3cret")
	assert.NotContains(t, w.Body.String(), "password")

	w = do(t, g.Handler(), http.MethodPost, "/api/users",
		`{"nom":"Sami","email":"not-an-email","telephone":"1","adresse":"Bizerte","roles":["client"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderTotalsOnServer(t *testing.T) {
	g, _ := newTestGateway(t, false, zap.NewNop())
	w := do(t, g.Handler(), http.MethodPost, "/api/orders",
		`{"utilisateurId":1,"utilisateurNom":"Ahmed","produits":[{"nom":"Jean","quantite":2,"prix":65}],"moyenPaiement":"PayPal"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var order map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, float64(130), order["total"])
	assert.Equal(t, "en préparation", order["statut"])
}

// The console path end to end: controller, HTTP client, gateway, sqlite.
func TestControllerAgainstGateway(t *testing.T) {
	g, _ := newTestGateway(t, true, zap.NewNop())
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	var notes []admin.Notification
	ctrl := admin.New(models.Categories,
		admin.WithStore[models.Category, models.CategoryForm](client.New(models.Categories, srv.URL, nil, nil)),
		admin.WithNotifier[models.Category, models.CategoryForm](admin.NotifierFunc(func(n admin.Notification) { notes = append(notes, n) })),
		admin.WithConfirmer[models.Category, models.CategoryForm](func(context.Context, models.Category) bool { return true }),
	)
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))
	require.Equal(t, 5, ctrl.Len())

	ctrl.BeginCreate()
	require.NoError(t, ctrl.DecodeForm(map[string]string{"nom": "Sport", "description": "Tenues"}))
	rec, err := ctrl.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), rec.ID)

	require.NoError(t, ctrl.BeginEdit(6))
	require.NoError(t, ctrl.DecodeForm(map[string]string{"nom": "Sports"}))
	_, err = ctrl.Submit(ctx)
	require.NoError(t, err)

	require.NoError(t, ctrl.Delete(ctx, 2))
	ctrl.SetSearch("sport")
	require.Len(t, ctrl.Filter(), 1)
	assert.Equal(t, "Sports", ctrl.Filter()[0].Name)

	// the server agrees with the controller
	fresh := admin.New(models.Categories, admin.WithStore[models.Category, models.CategoryForm](client.New(models.Categories, srv.URL, nil, nil)))
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, ctrl.Records(), fresh.Records())

	require.Len(t, notes, 3)
	assert.Equal(t, "Catégorie créée", notes[0].Title)
	assert.Equal(t, "Catégorie modifiée", notes[1].Title)
	assert.Equal(t, "Catégorie supprimée", notes[2].Title)
}
