package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/yigit/uniadvisor/internal/app/models"
)

var profileColumns = []string{
	"user_id", "university", "major", "year", "is_student", "interests", "created_at", "updated_at",
}

var chatColumns = []string{"id", "chat_id", "user_id", "role", "message", "created_at"}

// Null columns in the insert keep the stored value on conflict
const profileUpsertSuffix = `ON CONFLICT (user_id) DO UPDATE SET
	university = COALESCE(EXCLUDED.university, profiles.university),
	major = COALESCE(EXCLUDED.major, profiles.major),
	year = COALESCE(EXCLUDED.year, profiles.year),
	is_student = COALESCE(EXCLUDED.is_student, profiles.is_student),
	interests = COALESCE(EXCLUDED.interests, profiles.interests),
	updated_at = EXCLUDED.updated_at
RETURNING user_id, university, major, year, is_student, interests, created_at, updated_at`

func selectProfile(format squirrel.PlaceholderFormat, userID string) squirrel.SelectBuilder {
	return squirrel.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(format)
}

func upsertProfile(format squirrel.PlaceholderFormat, userID string, patch models.ProfilePatch, interests, now interface{}) squirrel.InsertBuilder {
	return squirrel.Insert("profiles").
		Columns(profileColumns...).
		Values(userID, patch.University, patch.Major, patch.Year, patch.IsStudent, interests, now, now).
		Suffix(profileUpsertSuffix).
		PlaceholderFormat(format)
}

func insertChat(format squirrel.PlaceholderFormat, turn *models.ChatTurn, createdAt interface{}) squirrel.InsertBuilder {
	return squirrel.Insert("chats").
		Columns("chat_id", "user_id", "role", "message", "created_at").
		Values(turn.ChatID, turn.UserID, string(turn.Role), turn.Message, createdAt).
		Suffix("RETURNING id").
		PlaceholderFormat(format)
}

// chatScope limits chat queries to a user and, when chatID is set, to one session
func chatScope(userID, chatID string) squirrel.Eq {
	scope := squirrel.Eq{"user_id": userID}
	if chatID != "" {
		scope["chat_id"] = chatID
	}
	return scope
}

func listChats(format squirrel.PlaceholderFormat, scope squirrel.Eq, limit, offset int) squirrel.SelectBuilder {
	q := squirrel.Select(chatColumns...).
		From("chats").
		Where(scope).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(format)
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}
	return q
}

func recentChats(format squirrel.PlaceholderFormat, scope squirrel.Eq, limit int) squirrel.SelectBuilder {
	return squirrel.Select(chatColumns...).
		From("chats").
		Where(scope).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(format)
}

func countChats(format squirrel.PlaceholderFormat, scope squirrel.Eq) squirrel.SelectBuilder {
	return squirrel.Select("COUNT(*)").
		From("chats").
		Where(scope).
		PlaceholderFormat(format)
}

func latestChatID(format squirrel.PlaceholderFormat, userID string) squirrel.SelectBuilder {
	return squirrel.Select("chat_id").
		From("chats").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		PlaceholderFormat(format)
}

func reverseTurns(turns []*models.ChatTurn) {
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
