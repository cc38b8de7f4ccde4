package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAnalysisReply = `{"score": 82, "matchLevel": "Good Match", "missingKeywords": ["Kubernetes"], ` +
	`"strengths": ["Go services"], "improvements": ["Quantify impact"]}`

// memStore is an in-memory UserStore.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[uuid.UUID]*db.User)}
}

func (m *memStore) find(match func(*db.User) bool) *db.User {
	for _, u := range m.users {
		if match(u) {
			c := *u
			return &c
		}
	}
	return nil
}

func (m *memStore) insert(name, email string, hash, uid *string) *db.User {
	now := time.Now()
	u := &db.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		ProviderUID:  uid,
		Plan:         "free",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[u.ID] = u
	c := *u
	return &c
}

func (m *memStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(func(u *db.User) bool { return u.Email == email }) != nil {
		return uuid.Nil, db.ErrEmailTaken
	}
	return m.insert(name, email, &passwordHash, nil).ID, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *db.User) bool { return u.ID == id }), nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *db.User) bool { return u.Email == email }), nil
}

func (m *memStore) GetUserByProviderUID(_ context.Context, uid string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *db.User) bool { return u.ProviderUID != nil && *u.ProviderUID == uid }), nil
}

func (m *memStore) UpsertProviderUser(_ context.Context, uid, email, name string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			if u.ProviderUID == nil {
				u.ProviderUID = &uid
				u.UpdatedAt = time.Now()
			}
			c := *u
			return &c, nil
		}
	}
	return m.insert(name, email, nil, &uid), nil
}

func (m *memStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(func(u *db.User) bool { return u.Email == email }) != nil, nil
}

func (m *memStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = &passwordHash
	return nil
}

// fakeModel is a scripted answer for one model name.
type fakeModel struct {
	reply string
	err   error
}

// fakeLLM answers per model and records every prompt it receives.
type fakeLLM struct {
	mu      sync.Mutex
	models  map[string]fakeModel
	calls   []string
	prompts []string
}

func newFakeLLM(models map[string]fakeModel) *fakeLLM {
	return &fakeLLM{models: models}
}

func (f *fakeLLM) GenerateWithModel(_ context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, model)
	f.prompts = append(f.prompts, prompt)
	m, ok := f.models[model]
	if !ok {
		return "", errors.New("404 model not found")
	}
	return m.reply, m.err
}

func (f *fakeLLM) Close() error { return nil }

func (f *fakeLLM) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fakeVerifier returns a fixed identity or error.
type fakeVerifier struct {
	identity *types.Identity
	err      error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*types.Identity, error) {
	return f.identity, f.err
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Auth.JWT.Secret = "test-secret-key-for-jwt-signing-minimum-32-bytes"
	cfg.Auth.Password.BcryptCost = bcrypt.MinCost
	cfg.RateLimit.Enabled = false
	cfg.LLM.Timeout = 5 * time.Second
	return cfg
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type testServerOptions struct {
	cfg      *config.Config
	llm      *fakeLLM
	models   []string
	verifier TokenVerifier
}

type testEnv struct {
	server *Server
	store  *memStore
	llm    *fakeLLM
}

func newTestEnv(t *testing.T, opts testServerOptions) *testEnv {
	t.Helper()
	if opts.cfg == nil {
		opts.cfg = testConfig()
	}
	if opts.llm == nil {
		opts.llm = newFakeLLM(map[string]fakeModel{"model-a": {reply: testAnalysisReply}})
	}
	if opts.models == nil {
		opts.models = []string{"model-a"}
	}

	store := newMemStore()
	s, err := New(Deps{
		Config:   opts.cfg,
		Logger:   testLogger(),
		Users:    store,
		Oracle:   scoring.NewOracle(opts.llm, opts.models, nil),
		Renderer: rendering.NewRenderer(nil),
		Verifier: opts.verifier,
	})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)

	return &testEnv{server: s, store: store, llm: opts.llm}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

// signUp registers a password user and returns it with a session token.
func (e *testEnv) signUp(t *testing.T, email string) (*types.User, string) {
	t.Helper()
	rec := e.do(jsonRequest(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.User, resp.Token
}

func jsonRequest(t *testing.T, method, path, token string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	msg, _ := body["message"].(string)
	return msg
}

// sampleResume has enough text to pass extraction once rendered.
func sampleResume() *types.ResumeDocument {
	return &types.ResumeDocument{
		Personal: types.Personal{Name: "Grace Hopper", Email: "grace@example.com", Phone: "+1 555 0100"},
		Summary:  "Backend engineer building Go services and data pipelines",
		Skills: types.Skills{
			Languages:  []string{"Go", "Python", "SQL"},
			Frameworks: []string{"gRPC", "React"},
			Tools:      []string{"PostgreSQL", "Docker"},
		},
		Experience: []types.Experience{{
			Title:       "Software Engineer Intern",
			Company:     "Acme Corp",
			Duration:    "Jun 2024 - Aug 2024",
			Description: "Built a REST API serving 10k requests per day\nCut query latency by 40% with indexes",
		}},
		Achievements: []string{"Winner of the campus hackathon"},
	}
}

func renderSamplePDF(t *testing.T, doc *types.ResumeDocument) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, rendering.NewRenderer(nil).Render(doc, &buf))
	return buf.Bytes()
}

// multipartFile is an uploaded form file.
type multipartFile struct {
	name        string
	contentType string
	data        []byte
}

func analyzeRequest(t *testing.T, token string, file *multipartFile, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="resume"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ats/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
