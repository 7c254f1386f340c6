package models

// User is the subset of an identity record this service reads for messages and offline delivery.
type User struct {
	ID             int64  `json:"id" db:"id"`
	FullName       string `json:"full_name" db:"full_name"`
	Email          string `json:"email" db:"email"`
	TelegramChatID int64  `json:"-" db:"telegram_chat_id"`
	NotifyTelegram bool   `json:"-" db:"notify_telegram"`
}

// DisplayName falls back to a neutral label when the directory has no name.
func (u *User) DisplayName() string {
	if u == nil || u.FullName == "" {
		return "A user"
	}
	return u.FullName
}
