// Package storetest opens a migrated in-memory store for tests and seeds the identity tables.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"taskly/internal/config"
	"taskly/internal/models"
	"taskly/internal/repositories"
)

// Open returns a fresh, migrated sqlite database that lives as long as the test.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	db, err := repositories.Open(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repositories.Migrate(context.Background(), db))
	return db
}

// Fixture is a team with a lead, two members and one outsider.
type Fixture struct {
	Lead, Alice, Bob, Outsider *models.User
	Team                       *models.Team
}

func Seed(t testing.TB, db *sqlx.DB) *Fixture {
	t.Helper()
	ctx := context.Background()
	users := repositories.NewUserRepository(db)
	teams := repositories.NewTeamRepository(db)

	f := &Fixture{
		Lead:     &models.User{FullName: "Lena Lead", Email: "lena@example.com"},
		Alice:    &models.User{FullName: "Alice", Email: "alice@example.com"},
		Bob:      &models.User{FullName: "Bob", Email: "bob@example.com"},
		Outsider: &models.User{FullName: "Oscar", Email: "oscar@example.com"},
	}
	for _, u := range []*models.User{f.Lead, f.Alice, f.Bob, f.Outsider} {
		require.NoError(t, users.Create(ctx, u))
	}
	f.Team = &models.Team{
		Name:      "Platform",
		LeadID:    f.Lead.ID,
		CreatedAt: time.Now().UTC(),
		MemberIDs: []int64{f.Alice.ID, f.Bob.ID},
	}
	require.NoError(t, teams.Create(ctx, f.Team))
	return f
}
