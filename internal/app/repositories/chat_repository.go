package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniadvisor/internal/app/models"
)

// ChatRepository handles database operations for transcript turns
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Append inserts a turn and fills in its ID and CreatedAt
func (r *ChatRepository) Append(ctx context.Context, turn *models.ChatTurn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	query, args, err := insertChat(squirrel.Dollar, turn, turn.CreatedAt).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&turn.ID); err != nil {
		return fmt.Errorf("error creating chat turn: %w", err)
	}
	return nil
}

// ListByUser retrieves a page of a user's transcript, oldest first
func (r *ChatRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.ChatTurn, error) {
	return r.query(ctx, listChats(squirrel.Dollar, chatScope(userID, ""), limit, offset))
}

// ListByChat retrieves a page of one chat session, oldest first
func (r *ChatRepository) ListByChat(ctx context.Context, userID, chatID string, limit, offset int) ([]*models.ChatTurn, error) {
	return r.query(ctx, listChats(squirrel.Dollar, chatScope(userID, chatID), limit, offset))
}

// RecentByChat retrieves the newest limit turns of one chat session in chronological order
func (r *ChatRepository) RecentByChat(ctx context.Context, userID, chatID string, limit int) ([]*models.ChatTurn, error) {
	turns, err := r.query(ctx, recentChats(squirrel.Dollar, chatScope(userID, chatID), limit))
	if err != nil {
		return nil, err
	}
	reverseTurns(turns)
	return turns, nil
}

// CountByUser counts a user's turns
func (r *ChatRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, chatScope(userID, ""))
}

// CountByChat counts the turns of one chat session
func (r *ChatRepository) CountByChat(ctx context.Context, userID, chatID string) (int64, error) {
	return r.count(ctx, chatScope(userID, chatID))
}

func (r *ChatRepository) count(ctx context.Context, scope squirrel.Eq) (int64, error) {
	query, args, err := countChats(squirrel.Dollar, scope).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting chat turns: %w", err)
	}
	return count, nil
}

// LatestChatID returns the chat id of the user's most recent turn
func (r *ChatRepository) LatestChatID(ctx context.Context, userID string) (string, error) {
	query, args, err := latestChatID(squirrel.Dollar, userID).ToSql()
	if err != nil {
		return "", fmt.Errorf("error building SQL: %w", err)
	}

	var chatID string
	err = r.db.QueryRow(ctx, query, args...).Scan(&chatID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error retrieving chat id: %w", err)
	}
	return chatID, nil
}

func (r *ChatRepository) query(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.ChatTurn, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	turns := []*models.ChatTurn{}
	for rows.Next() {
		var turn models.ChatTurn
		if err := rows.Scan(
			&turn.ID,
			&turn.ChatID,
			&turn.UserID,
			&turn.Role,
			&turn.Message,
			&turn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning chat turn row: %w", err)
		}
		turns = append(turns, &turn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat turn rows: %w", err)
	}
	return turns, nil
}
