package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddheshmm/leadgen-cli/internal/model"
	"github.com/siddheshmm/leadgen-cli/internal/pipeline"
	"github.com/siddheshmm/leadgen-cli/internal/scoring"
	"github.com/siddheshmm/leadgen-cli/internal/store"
)

type identifyFunc func(ctx context.Context, q model.Query) ([]model.Lead, error)

func (f identifyFunc) Identify(ctx context.Context, q model.Query) ([]model.Lead, error) {
	return f(ctx, q)
}

type enrichFunc func(ctx context.Context, lead model.Lead) (model.Lead, error)

func (f enrichFunc) Name() string { return "test" }
func (f enrichFunc) Enrich(ctx context.Context, lead model.Lead) (model.Lead, error) {
	return f(ctx, lead)
}

func newTestServer(t *testing.T, identifier pipeline.Identifier) (http.Handler, store.Store) {
	t.Helper()

	st, err := store.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "leads.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	engine, err := scoring.New(scoring.DefaultRules())
	require.NoError(t, err)

	enricher := enrichFunc(func(_ context.Context, lead model.Lead) (model.Lead, error) {
		return lead, nil
	})
	p, err := pipeline.New(identifier, enricher, engine, st, pipeline.Options{})
	require.NoError(t, err)

	return NewServer(context.Background(), p, st).Router(), st
}

func noIdentify(_ context.Context, _ model.Query) ([]model.Lead, error) {
	return nil, nil
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, identifyFunc(noIdentify))

	w := doRequest(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestServer_CreateRun(t *testing.T) {
	t.Parallel()

	identifier := identifyFunc(func(_ context.Context, _ model.Query) ([]model.Lead, error) {
		return []model.Lead{
			{SourceID: "linkedin:a", FullName: "Dr. Sarah Johnson", Title: "Director of Toxicology", Company: "Pfizer Inc"},
			{SourceID: "linkedin:b", FullName: "Jane Doe", Title: "Accountant", Company: "Acme Corp"},
		}, nil
	})
	h, _ := newTestServer(t, identifier)

	w := doRequest(t, h, http.MethodPost, "/runs", `{"titles":["Toxicology"]}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	var run model.Run
	decodeBody(t, w, &run)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)
	assert.Equal(t, []string{"Toxicology"}, run.Query.Titles)

	// The run executes in the background. Poll until it completes.
	require.Eventually(t, func() bool {
		w := doRequest(t, h, http.MethodGet, "/runs/"+run.ID, "")
		if w.Code != http.StatusOK {
			return false
		}
		var got model.Run
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			return false
		}
		return got.Status == model.RunStatusComplete
	}, 2*time.Second, 10*time.Millisecond)

	w = doRequest(t, h, http.MethodGet, "/runs/"+run.ID+"/leads", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		RunID string             `json:"run_id"`
		Leads []model.RankedLead `json:"leads"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, run.ID, body.RunID)
	require.Len(t, body.Leads, 2)
	assert.Equal(t, "Dr. Sarah Johnson", body.Leads[0].FullName)
	assert.Equal(t, 1, body.Leads[0].Rank)
}

func TestServer_CreateRun_BadBody(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, identifyFunc(noIdentify))

	w := doRequest(t, h, http.MethodPost, "/runs", `{"titles": not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "invalid request body", body["error"])
}

func TestServer_GetRun_NotFound(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, identifyFunc(noIdentify))

	w := doRequest(t, h, http.MethodGet, "/runs/no-such-run", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	decodeBody(t, w, &body)
	assert.Equal(t, "run not found", body["error"])
}

func TestServer_ListRuns(t *testing.T) {
	t.Parallel()

	h, st := newTestServer(t, identifyFunc(noIdentify))
	ctx := context.Background()

	run1, err := st.CreateRun(ctx, model.Query{Titles: []string{"Toxicology"}})
	require.NoError(t, err)
	_, err = st.CreateRun(ctx, model.Query{Keywords: []string{"NAMs"}})
	require.NoError(t, err)
	require.NoError(t, st.FailRun(ctx, run1.ID, context.DeadlineExceeded))

	w := doRequest(t, h, http.MethodGet, "/runs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Runs []model.Run `json:"runs"`
	}
	decodeBody(t, w, &body)
	assert.Len(t, body.Runs, 2)

	w = doRequest(t, h, http.MethodGet, "/runs?status=failed", "")
	require.Equal(t, http.StatusOK, w.Code)
	body.Runs = nil
	decodeBody(t, w, &body)
	require.Len(t, body.Runs, 1)
	assert.Equal(t, run1.ID, body.Runs[0].ID)

	w = doRequest(t, h, http.MethodGet, "/runs?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	body.Runs = nil
	decodeBody(t, w, &body)
	assert.Len(t, body.Runs, 1)
}

func TestServer_ListRuns_Empty(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, identifyFunc(noIdentify))

	w := doRequest(t, h, http.MethodGet, "/runs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"runs": []}`, w.Body.String())
}

func TestServer_ListRuns_BadLimit(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, identifyFunc(noIdentify))

	for _, path := range []string{"/runs?limit=abc", "/runs?offset=-1"} {
		w := doRequest(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestServer_GetLeads_Filters(t *testing.T) {
	t.Parallel()

	h, st := newTestServer(t, identifyFunc(noIdentify))
	ctx := context.Background()

	run, err := st.CreateRun(ctx, model.Query{})
	require.NoError(t, err)

	leads := []model.RankedLead{
		{ScoredLead: model.ScoredLead{Lead: model.Lead{SourceID: "linkedin:a", FullName: "Dr. Sarah Johnson", Company: "Pfizer Inc"}, Score: 90}, Rank: 1},
		{ScoredLead: model.ScoredLead{Lead: model.Lead{SourceID: "linkedin:b", FullName: "Jane Doe", Company: "Acme Corp"}, Score: 20}, Rank: 2},
	}
	require.NoError(t, st.SaveLeads(ctx, run.ID, leads))

	var body struct {
		Leads []model.RankedLead `json:"leads"`
	}

	w := doRequest(t, h, http.MethodGet, "/runs/"+run.ID+"/leads?min_score=70", "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &body)
	require.Len(t, body.Leads, 1)
	assert.Equal(t, "Dr. Sarah Johnson", body.Leads[0].FullName)

	w = doRequest(t, h, http.MethodGet, "/runs/"+run.ID+"/leads?q=acme", "")
	require.Equal(t, http.StatusOK, w.Code)
	body.Leads = nil
	decodeBody(t, w, &body)
	require.Len(t, body.Leads, 1)
	assert.Equal(t, "Jane Doe", body.Leads[0].FullName)

	w = doRequest(t, h, http.MethodGet, "/runs/"+run.ID+"/leads?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	body.Leads = nil
	decodeBody(t, w, &body)
	assert.Len(t, body.Leads, 1)

	w = doRequest(t, h, http.MethodGet, "/runs/"+run.ID+"/leads?min_score=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodGet, "/runs/no-such-run/leads", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_CORS(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, identifyFunc(noIdentify))

	r := httptest.NewRequest(http.MethodOptions, "/runs", nil)
	r.Header.Set("Origin", "http://dashboard.local")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
