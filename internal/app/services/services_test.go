package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniadvisor/internal/app/catalog"
	"github.com/yigit/uniadvisor/internal/app/repositories"
	"github.com/yigit/uniadvisor/internal/db"
	"github.com/yigit/uniadvisor/internal/llm"
	"github.com/yigit/uniadvisor/internal/pkg/websocket"
)

func newTestRepos(t *testing.T) *repositories.Repositories {
	t.Helper()
	sqliteDB, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteDB.Close() })
	return repositories.NewSQLiteRepositories(sqliteDB.DB)
}

func newTestRegistry() *catalog.Registry {
	return catalog.NewRegistry("UMASS_BOSTON",
		catalog.New("UMASS_BOSTON", []catalog.Course{
			{ID: "CS110", Title: "Introduction to Computing", Description: "Programming basics."},
			{ID: "CS210", Title: "Intermediate Computing", Description: "Data structures.", PrerequisiteText: "CS110"},
			{ID: "MATH140", Title: "Calculus I", Description: "Limits and derivatives."},
		}),
		catalog.New("MIT", []catalog.Course{
			{ID: "6.0001", Title: "Introduction to Python", Description: "Python."},
			{ID: "CS100", Title: "Computing at MIT", Description: "Overview."},
		}),
	)
}

// mockProvider is a testify mock of llm.Provider
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*llm.Response)
	return resp, args.Error(1)
}

func (m *mockProvider) Name() string {
	return "mock"
}

// recordingNotifier captures pushed messages
type recordingNotifier struct {
	mu       sync.Mutex
	messages []*websocket.Message
}

func (n *recordingNotifier) SendToUser(message *websocket.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]string, 0, len(n.messages))
	for _, m := range n.messages {
		types = append(types, m.Type)
	}
	return types
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func strPtr(s string) *string { return &s }
