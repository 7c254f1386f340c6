package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskly/internal/models"
)

// TeamRepository reads the team directory. Teams are owned by the identity service; Create exists for seeding.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id int64) (*models.Team, error)
	IsMember(ctx context.Context, teamID, userID int64) (bool, error)
}

type teamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) TeamRepository {
	return &teamRepository{db: db}
}

// Create inserts the team and its members. The lead is always recorded as a member.
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := insertReturningID(ctx, tx,
		`INSERT INTO teams (name, lead_id, created_at) VALUES (?, ?, ?) RETURNING id`,
		team.Name, team.LeadID, team.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	members := team.MemberIDs
	if !team.HasMember(team.LeadID) {
		members = append([]int64{team.LeadID}, members...)
	}
	for _, userID := range members {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO team_members (team_id, user_id) VALUES (?, ?)`), id, userID); err != nil {
			return fmt.Errorf("insert team member %d: %w", userID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	team.ID = id
	team.MemberIDs = members
	return nil
}

func (r *teamRepository) FindByID(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	err := r.db.GetContext(ctx, &team, r.db.Rebind(`SELECT id, name, lead_id, created_at FROM teams WHERE id = ?`), id)
	if err != nil {
		return nil, notFound(err)
	}
	team.MemberIDs = []int64{}
	if err := r.db.SelectContext(ctx, &team.MemberIDs,
		r.db.Rebind(`SELECT user_id FROM team_members WHERE team_id = ? ORDER BY user_id`), id); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) IsMember(ctx context.Context, teamID, userID int64) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		r.db.Rebind(`SELECT COUNT(*) FROM team_members WHERE team_id = ? AND user_id = ?`), teamID, userID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
