package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"taskly/internal/models"
	"taskly/internal/repositories"
)

// DirectoryFixture mirrors users and teams from the identity service into the local store.
type DirectoryFixture struct {
	Users []FixtureUser `yaml:"users"`
	Teams []FixtureTeam `yaml:"teams"`
}

type FixtureUser struct {
	Key            string `yaml:"key"`
	FullName       string `yaml:"full_name"`
	Email          string `yaml:"email"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
	NotifyTelegram bool   `yaml:"notify_telegram"`
}

type FixtureTeam struct {
	Name    string   `yaml:"name"`
	Lead    string   `yaml:"lead"`
	Members []string `yaml:"members"`
}

type UserService interface {
	Import(ctx context.Context, fx DirectoryFixture) (map[string]int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	LinkTelegram(ctx context.Context, userID, chatID int64, enable bool) error
}

type userService struct {
	users repositories.UserRepository
	teams repositories.TeamRepository
	log   logrus.FieldLogger
}

func NewUserService(users repositories.UserRepository, teams repositories.TeamRepository, log logrus.FieldLogger) UserService {
	return &userService{users: users, teams: teams, log: log}
}

// Import creates every fixture user and team and returns the new ids by fixture key.
func (s *userService) Import(ctx context.Context, fx DirectoryFixture) (map[string]int64, error) {
	ids := make(map[string]int64, len(fx.Users))
	for _, fu := range fx.Users {
		if fu.Key == "" {
			return nil, fail(ErrValidation, "every fixture user needs a key")
		}
		if _, dup := ids[fu.Key]; dup {
			return nil, failf(ErrValidation, "duplicate fixture user key %q", fu.Key)
		}
		u := &models.User{
			FullName:       fu.FullName,
			Email:          fu.Email,
			TelegramChatID: fu.TelegramChatID,
			NotifyTelegram: fu.NotifyTelegram,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("import user %s: %w", fu.Key, err)
		}
		ids[fu.Key] = u.ID
	}

	for _, ft := range fx.Teams {
		leadID, ok := ids[ft.Lead]
		if !ok {
			return nil, failf(ErrValidation, "team %q: unknown lead %q", ft.Name, ft.Lead)
		}
		team := &models.Team{Name: ft.Name, LeadID: leadID, CreatedAt: utcNow()}
		for _, key := range ft.Members {
			id, ok := ids[key]
			if !ok {
				return nil, failf(ErrValidation, "team %q: unknown member %q", ft.Name, key)
			}
			if !team.HasMember(id) {
				team.MemberIDs = append(team.MemberIDs, id)
			}
		}
		if err := s.teams.Create(ctx, team); err != nil {
			return nil, fmt.Errorf("import team %s: %w", ft.Name, err)
		}
		s.log.WithFields(logrus.Fields{"op": "directory.import", "team_id": team.ID, "members": len(team.MemberIDs)}).Info("team imported")
	}
	return ids, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return u, nil
}

func (s *userService) LinkTelegram(ctx context.Context, userID, chatID int64, enable bool) error {
	if enable && chatID == 0 {
		return fail(ErrValidation, "chat_id is required to enable telegram notifications")
	}
	err := s.users.UpdateTelegramLink(ctx, userID, chatID, enable)
	if errors.Is(err, repositories.ErrNotFound) {
		return fail(ErrUnauthorized, "unknown user")
	}
	if err != nil {
		return fmt.Errorf("link telegram: %w", err)
	}
	s.log.WithFields(logrus.Fields{"op": "user.telegram", "user_id": userID, "enabled": enable}).Info("[tg] link updated")
	return nil
}

