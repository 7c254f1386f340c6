package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskly/internal/models"
)

// UserRepository reads the slice of the user directory needed for messages and offline delivery.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.User, error)

	// Telegram helpers
	UpdateTelegramLink(ctx context.Context, userID, chatID int64, enable bool) error
	GetTelegramSettings(ctx context.Context, userID int64) (chatID int64, notify bool, err error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, full_name, email, telegram_chat_id, notify_telegram`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	id, err := insertReturningID(ctx, r.db, `
		INSERT INTO users (full_name, email, telegram_chat_id, notify_telegram)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		user.FullName, user.Email, user.TelegramChatID, user.NotifyTelegram,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateTelegramLink(ctx context.Context, userID, chatID int64, enable bool) error {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE users SET telegram_chat_id = ?, notify_telegram = ? WHERE id = ?`),
		chatID, enable, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) GetTelegramSettings(ctx context.Context, userID int64) (int64, bool, error) {
	var row struct {
		ChatID int64 `db:"telegram_chat_id"`
		Notify bool  `db:"notify_telegram"`
	}
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind(`SELECT telegram_chat_id, notify_telegram FROM users WHERE id = ?`), userID)
	if err != nil {
		return 0, false, notFound(err)
	}
	return row.ChatID, row.Notify, nil
}
