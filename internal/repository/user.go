package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adboard/chat-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const pushTitleTTL = 10 * time.Minute

// UserRepo is the read-mostly view of the user directory the chat core
// needs: existence, banned flag, language, push tokens and the localized
// push title templates.
type UserRepo struct {
	db    *sqlx.DB
	cache *redis.Client
}

func NewUserRepo(db *sqlx.DB, cache *redis.Client) *UserRepo {
	return &UserRepo{
		db:    db,
		cache: cache,
	}
}

func (ur *UserRepo) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	query := `
		SELECT user_id, language_id, online, banned
		FROM users
		WHERE user_id = $1;
	`

	var user domain.User
	if err := ur.db.GetContext(ctx, &user, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (ur *UserRepo) SetOnline(ctx context.Context, userID int, online bool) error {
	query := `
		UPDATE users SET online = $1 WHERE user_id = $2;
	`

	_, err := ur.db.ExecContext(ctx, query, online, userID)
	return err
}

// PushTokens reads the device tokens registered for the user. The token set
// is written by the profile service; this core only consumes it.
func (ur *UserRepo) PushTokens(ctx context.Context, userID int) ([]string, error) {
	tokens, err := ur.cache.SMembers(ctx, fmt.Sprintf("push_tokens:%d", userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return tokens, err
}

// PushTitle returns the notification title template for the language, cached
// in redis in front of the service_elements table.
func (ur *UserRepo) PushTitle(ctx context.Context, language string) (string, error) {
	cacheKey := "service_element:chat_push:" + language

	if title, err := ur.cache.Get(ctx, cacheKey).Result(); err == nil && title != "" {
		return title, nil
	}

	query := `
		SELECT element_name FROM service_elements
		WHERE element_code = 'chat_push' AND translate_code = $1;
	`

	var title string
	if err := ur.db.GetContext(ctx, &title, query, language); err != nil {
		if err == sql.ErrNoRows {
			return "", domain.ErrNotFound
		}
		return "", err
	}

	if err := ur.cache.Set(ctx, cacheKey, title, pushTitleTTL).Err(); err != nil {
		return title, nil
	}
	return title, nil
}
