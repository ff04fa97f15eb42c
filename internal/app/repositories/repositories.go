package repositories

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniadvisor/internal/app/models"
)

// ProfileRepository persists advising profiles
type ProfileRepository interface {
	// GetByUserID returns nil, nil when no profile exists
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	// Upsert merges the supplied fields into the stored record, creating it if needed
	Upsert(ctx context.Context, userID string, patch models.ProfilePatch) (*models.UserProfile, error)
	Ping(ctx context.Context) error
}

// TranscriptRepository persists chat turns
type TranscriptRepository interface {
	Append(ctx context.Context, turn *models.ChatTurn) error
	// ListByUser returns turns oldest first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.ChatTurn, error)
	// ListByChat returns one session's turns oldest first
	ListByChat(ctx context.Context, userID, chatID string, limit, offset int) ([]*models.ChatTurn, error)
	// RecentByChat returns the newest limit turns of one session, oldest first
	RecentByChat(ctx context.Context, userID, chatID string, limit int) ([]*models.ChatTurn, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	CountByChat(ctx context.Context, userID, chatID string) (int64, error)
	// LatestChatID returns the chat id of the most recent turn, or ""
	LatestChatID(ctx context.Context, userID string) (string, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Profiles    ProfileRepository
	Transcripts TranscriptRepository
}

// NewPostgresRepositories wires the Postgres implementations
func NewPostgresRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Profiles:    NewProfileRepository(pool),
		Transcripts: NewChatRepository(pool),
	}
}

// NewSQLiteRepositories wires the SQLite implementations
func NewSQLiteRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Profiles:    NewSQLiteProfileRepository(db),
		Transcripts: NewSQLiteChatRepository(db),
	}
}
