package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/uniadvisor/internal/app/models"
)

// SQLiteProfileRepository stores profiles in a SQLite file.
// Interests are kept as a JSON array and timestamps as unix microseconds.
type SQLiteProfileRepository struct {
	db *sql.DB
}

// NewSQLiteProfileRepository creates a new SQLite profile repository
func NewSQLiteProfileRepository(db *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{db: db}
}

// GetByUserID retrieves a profile by identity
func (r *SQLiteProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query, args, err := selectProfile(squirrel.Question, userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	profile, err := scanSQLiteProfile(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return profile, nil
}

// Upsert inserts the profile or merges patch into the existing one
func (r *SQLiteProfileRepository) Upsert(ctx context.Context, userID string, patch models.ProfilePatch) (*models.UserProfile, error) {
	var interests interface{}
	if patch.Interests != nil {
		encoded, err := json.Marshal(patch.Interests)
		if err != nil {
			return nil, fmt.Errorf("error encoding interests: %w", err)
		}
		interests = string(encoded)
	}

	query, args, err := upsertProfile(squirrel.Question, userID, patch, interests, time.Now().UTC().UnixMicro()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	profile, err := scanSQLiteProfile(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("error upserting profile: %w", err)
	}
	return profile, nil
}

// Ping checks connectivity
func (r *SQLiteProfileRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanSQLiteProfile(row *sql.Row) (*models.UserProfile, error) {
	var profile models.UserProfile
	var university, major, interests sql.NullString
	var year sql.NullInt64
	var isStudent sql.NullBool
	var createdAt, updatedAt int64

	if err := row.Scan(
		&profile.UserID,
		&university,
		&major,
		&year,
		&isStudent,
		&interests,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	profile.University = university.String
	profile.Major = major.String
	if year.Valid {
		y := int(year.Int64)
		profile.Year = &y
	}
	if isStudent.Valid {
		s := isStudent.Bool
		profile.IsStudent = &s
	}
	profile.Interests = []string{}
	if interests.Valid && interests.String != "" {
		if err := json.Unmarshal([]byte(interests.String), &profile.Interests); err != nil {
			return nil, fmt.Errorf("error decoding interests: %w", err)
		}
	}
	profile.CreatedAt = time.UnixMicro(createdAt).UTC()
	profile.UpdatedAt = time.UnixMicro(updatedAt).UTC()

	return &profile, nil
}

// SQLiteChatRepository stores transcript turns in a SQLite file
type SQLiteChatRepository struct {
	db *sql.DB
}

// NewSQLiteChatRepository creates a new SQLite transcript repository
func NewSQLiteChatRepository(db *sql.DB) *SQLiteChatRepository {
	return &SQLiteChatRepository{db: db}
}

// Append inserts a turn and fills in its ID and CreatedAt
func (r *SQLiteChatRepository) Append(ctx context.Context, turn *models.ChatTurn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	query, args, err := insertChat(squirrel.Question, turn, turn.CreatedAt.UnixMicro()).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&turn.ID); err != nil {
		return fmt.Errorf("error creating chat turn: %w", err)
	}
	return nil
}

// ListByUser retrieves a page of a user's transcript, oldest first
func (r *SQLiteChatRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.ChatTurn, error) {
	return r.query(ctx, listChats(squirrel.Question, chatScope(userID, ""), limit, offset))
}

// ListByChat retrieves a page of one chat session, oldest first
func (r *SQLiteChatRepository) ListByChat(ctx context.Context, userID, chatID string, limit, offset int) ([]*models.ChatTurn, error) {
	return r.query(ctx, listChats(squirrel.Question, chatScope(userID, chatID), limit, offset))
}

// RecentByChat retrieves the newest limit turns of one chat session in chronological order
func (r *SQLiteChatRepository) RecentByChat(ctx context.Context, userID, chatID string, limit int) ([]*models.ChatTurn, error) {
	turns, err := r.query(ctx, recentChats(squirrel.Question, chatScope(userID, chatID), limit))
	if err != nil {
		return nil, err
	}
	reverseTurns(turns)
	return turns, nil
}

// CountByUser counts a user's turns
func (r *SQLiteChatRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, chatScope(userID, ""))
}

// CountByChat counts the turns of one chat session
func (r *SQLiteChatRepository) CountByChat(ctx context.Context, userID, chatID string) (int64, error) {
	return r.count(ctx, chatScope(userID, chatID))
}

func (r *SQLiteChatRepository) count(ctx context.Context, scope squirrel.Eq) (int64, error) {
	query, args, err := countChats(squirrel.Question, scope).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting chat turns: %w", err)
	}
	return count, nil
}

// LatestChatID returns the chat id of the user's most recent turn
func (r *SQLiteChatRepository) LatestChatID(ctx context.Context, userID string) (string, error) {
	query, args, err := latestChatID(squirrel.Question, userID).ToSql()
	if err != nil {
		return "", fmt.Errorf("error building SQL: %w", err)
	}

	var chatID string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error retrieving chat id: %w", err)
	}
	return chatID, nil
}

func (r *SQLiteChatRepository) query(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.ChatTurn, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	turns := []*models.ChatTurn{}
	for rows.Next() {
		var turn models.ChatTurn
		var role string
		var createdAt int64
		if err := rows.Scan(
			&turn.ID,
			&turn.ChatID,
			&turn.UserID,
			&role,
			&turn.Message,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning chat turn row: %w", err)
		}
		turn.Role = models.Role(role)
		turn.CreatedAt = time.UnixMicro(createdAt).UTC()
		turns = append(turns, &turn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat turn rows: %w", err)
	}
	return turns, nil
}
