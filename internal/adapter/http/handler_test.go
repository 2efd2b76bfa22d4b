package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"resume-editor/internal/adapter/repository"
	"resume-editor/internal/domain"
	"resume-editor/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshots struct {
	doc      *domain.Document
	company  string
	savedDoc *domain.Document
}

func (f *fakeSnapshots) LoadDocument(context.Context) (*domain.Document, error) {
	if f.doc == nil {
		return nil, usecase.ErrNoSnapshot
	}
	return f.doc.Clone(), nil
}

func (f *fakeSnapshots) LoadCompany(context.Context) (string, error) {
	if f.company == "" {
		return "", usecase.ErrNoSnapshot
	}
	return f.company, nil
}

func (f *fakeSnapshots) SaveResult(_ context.Context, doc *domain.Document, _, _ string) error {
	f.savedDoc = doc.Clone()
	return nil
}

type fakeRebuilder struct {
	viewURL string
	err     error
}

func (f *fakeRebuilder) Rebuild(context.Context, usecase.RebuildRequest) (string, error) {
	return f.viewURL, f.err
}

type fakeExtractor struct{}

func (fakeExtractor) ExtractText(context.Context, string) (string, error) {
	return "Senior Engineer role at Acme.", nil
}

func newTestApp(snaps *fakeSnapshots, rb *fakeRebuilder) *fiber.App {
	session := usecase.NewSession(snaps, usecase.NewCoordinator(rb, snaps, nil, ""))
	h := NewHandler(session, fakeExtractor{}, repository.NewHistoryRepo(nil))

	app := fiber.New()
	app.Post("/session/open", h.OpenSession)
	app.Post("/session/view", h.UpdateView)
	app.Post("/session/section", h.SwitchSection)
	app.Post("/session/save", h.SaveSession)
	app.Post("/session/cancel", h.CancelSession)
	app.Post("/jd/extract", h.ExtractJD)
	app.Get("/history", h.History)
	app.Get("/health", h.Health)
	return app
}

type sessionResp struct {
	View       *usecase.View `json:"view"`
	ParseError string        `json:"parse_error"`
	Status     string        `json:"status"`
	ViewURL    string        `json:"view_url"`
	Error      string        `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, sessionResp) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out sessionResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func sessionDoc() *domain.Document {
	return &domain.Document{
		Summary: "AI engineer",
		Skills:  domain.SkillGroups{{Category: "Languages", Skills: "Go"}},
		Extra: []domain.RawSection{
			{Name: "education", Value: json.RawMessage(`[{"institution":"NEU"}]`)},
		},
	}
}

func TestOpenWithoutSnapshot(t *testing.T) {
	app := newTestApp(&fakeSnapshots{}, &fakeRebuilder{})
	code, out := doJSON(t, app, nethttp.MethodPost, "/session/open", nil)
	assert.Equal(t, nethttp.StatusNotFound, code)
	assert.Contains(t, out.Error, "no generated resume")
}

func TestOpenDefaultsToSummary(t *testing.T) {
	app := newTestApp(&fakeSnapshots{doc: sessionDoc()}, &fakeRebuilder{})
	code, out := doJSON(t, app, nethttp.MethodPost, "/session/open", nil)
	require.Equal(t, nethttp.StatusOK, code)
	require.NotNil(t, out.View)
	assert.Equal(t, domain.SectionSummary, out.View.Section)
	assert.Equal(t, "AI engineer", out.View.Text)
}

func TestOpenTwiceConflicts(t *testing.T) {
	app := newTestApp(&fakeSnapshots{doc: sessionDoc()}, &fakeRebuilder{})
	code, _ := doJSON(t, app, nethttp.MethodPost, "/session/open", fiber.Map{"section": "skills"})
	require.Equal(t, nethttp.StatusOK, code)

	code, _ = doJSON(t, app, nethttp.MethodPost, "/session/open", nil)
	assert.Equal(t, nethttp.StatusConflict, code)
}

func TestSwitchCommitsInlineView(t *testing.T) {
	app := newTestApp(&fakeSnapshots{doc: sessionDoc()}, &fakeRebuilder{})
	code, _ := doJSON(t, app, nethttp.MethodPost, "/session/open", nil)
	require.Equal(t, nethttp.StatusOK, code)

	code, out := doJSON(t, app, nethttp.MethodPost, "/session/section", fiber.Map{
		"section": "skills",
		"view":    usecase.View{Section: domain.SectionSummary, Text: "Rewritten."},
	})
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, domain.SectionSkills, out.View.Section)
	assert.Empty(t, out.ParseError)

	code, out = doJSON(t, app, nethttp.MethodPost, "/session/section", fiber.Map{"section": "summary"})
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "Rewritten.", out.View.Text)
}

func TestSwitchReportsParseError(t *testing.T) {
	app := newTestApp(&fakeSnapshots{doc: sessionDoc()}, &fakeRebuilder{})
	code, _ := doJSON(t, app, nethttp.MethodPost, "/session/open", fiber.Map{"section": "education"})
	require.Equal(t, nethttp.StatusOK, code)

	code, out := doJSON(t, app, nethttp.MethodPost, "/session/section", fiber.Map{
		"section": "summary",
		"view":    usecase.View{Section: "education", IsRaw: true, Raw: "{broken"},
	})
	require.Equal(t, nethttp.StatusOK, code, "target still renders")
	assert.Contains(t, out.ParseError, "not valid JSON")
	assert.Equal(t, domain.SectionSummary, out.View.Section)
}

func TestSaveSuccessClosesSession(t *testing.T) {
	snaps := &fakeSnapshots{doc: sessionDoc(), company: "Acme"}
	app := newTestApp(snaps, &fakeRebuilder{viewURL: "https://drive.example/v2"})
	code, _ := doJSON(t, app, nethttp.MethodPost, "/session/open", nil)
	require.Equal(t, nethttp.StatusOK, code)

	code, out := doJSON(t, app, nethttp.MethodPost, "/session/save", nil)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "https://drive.example/v2", out.ViewURL)
	assert.NotNil(t, snaps.savedDoc)

	// session is closed now
	code, _ = doJSON(t, app, nethttp.MethodPost, "/session/view", fiber.Map{
		"view": usecase.View{Section: domain.SectionSummary},
	})
	assert.Equal(t, nethttp.StatusConflict, code)
}

func TestSaveFailureKeepsSessionOpen(t *testing.T) {
	snaps := &fakeSnapshots{doc: sessionDoc(), company: "Acme"}
	app := newTestApp(snaps, &fakeRebuilder{err: errors.New("service down")})
	code, _ := doJSON(t, app, nethttp.MethodPost, "/session/open", nil)
	require.Equal(t, nethttp.StatusOK, code)

	code, out := doJSON(t, app, nethttp.MethodPost, "/session/save", nil)
	assert.Equal(t, nethttp.StatusBadGateway, code)
	assert.Contains(t, out.Error, "service down")
	assert.Nil(t, snaps.savedDoc)

	// still editable for a retry
	code, _ = doJSON(t, app, nethttp.MethodPost, "/session/view", fiber.Map{
		"view": usecase.View{Section: domain.SectionSummary, Text: "retry edit"},
	})
	assert.Equal(t, nethttp.StatusOK, code)
}

func TestCancelSession(t *testing.T) {
	app := newTestApp(&fakeSnapshots{doc: sessionDoc()}, &fakeRebuilder{})
	code, _ := doJSON(t, app, nethttp.MethodPost, "/session/open", nil)
	require.Equal(t, nethttp.StatusOK, code)

	code, out := doJSON(t, app, nethttp.MethodPost, "/session/cancel", nil)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "cancelled", out.Status)

	// reopening works again
	code, _ = doJSON(t, app, nethttp.MethodPost, "/session/open", nil)
	assert.Equal(t, nethttp.StatusOK, code)
}

func TestExtractJD(t *testing.T) {
	app := newTestApp(&fakeSnapshots{doc: sessionDoc()}, &fakeRebuilder{})

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(fiber.Map{"url": "https://jobs.example/123"}))
	req := httptest.NewRequest(nethttp.MethodPost, "/jd/extract", &body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Senior Engineer role at Acme.", out["jd_text"])
}

func TestHealth(t *testing.T) {
	app := newTestApp(&fakeSnapshots{}, &fakeRebuilder{})
	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
