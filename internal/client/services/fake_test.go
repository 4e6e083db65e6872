package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"storysync/internal/client/gateway"
	"storysync/internal/client/models"
	"storysync/internal/client/session"
	"storysync/internal/client/store"
	"storysync/internal/logging"

	_ "modernc.org/sqlite"
)

type submitCall struct {
	sub   models.Submission
	token string
}

// fakeGateway is a programmable gateway.Client recording every call.
type fakeGateway struct {
	listResult []models.Story
	listErr    error
	listCalls  int

	detailResult map[string]*models.Story
	detailErr    error
	detailCalls  int

	submitCalls []submitCall
	submitErr   func(sub models.Submission) error

	registerErr error
	loginResult *gateway.LoginResult
	loginErr    error
	pingErr     error
}

func (f *fakeGateway) ListStories(ctx context.Context, page, size int, withLocation bool, token string) ([]models.Story, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeGateway) GetStoryDetail(ctx context.Context, id, token string) (*models.Story, error) {
	f.detailCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if s, ok := f.detailResult[id]; ok {
		return s, nil
	}
	return nil, &gateway.NetworkError{Op: "get story detail", Status: 404}
}

func (f *fakeGateway) SubmitStory(ctx context.Context, sub models.Submission, token string) error {
	f.submitCalls = append(f.submitCalls, submitCall{sub: sub, token: token})
	if f.submitErr != nil {
		return f.submitErr(sub)
	}
	return nil
}

func (f *fakeGateway) Register(ctx context.Context, name, email, password string) error {
	return f.registerErr
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeGateway) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeGateway) FetchImage(ctx context.Context, url string) (*models.ImageAsset, error) {
	return nil, &gateway.NetworkError{Op: "fetch image", Status: 404}
}

// fakeNotifier records notifications.
type fakeNotifier struct {
	titles []string
	bodies []string
}

func (f *fakeNotifier) Notify(ctx context.Context, title, body string) {
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open(ctx, filepath.Join(t.TempDir(), "stories.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return store.New(db, nil, logging.NewDefault())
}

func newTestSession(t *testing.T, token string) *session.Session {
	t.Helper()
	s, err := session.Load(filepath.Join(t.TempDir(), "session"))
	require.NoError(t, err)
	if token != "" {
		require.NoError(t, s.SetToken(token))
	}
	return s
}

func f64(v float64) *float64 { return &v }
