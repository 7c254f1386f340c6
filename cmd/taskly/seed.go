package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskly/internal/middleware"
	"taskly/internal/repositories"
	"taskly/internal/services"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Import users and teams from a fixture",
		Long: "Users and teams belong to the identity service; seed mirrors them into the local store.\n" +
			"With --tokens it also prints a development token per imported user.",
		Args: cobra.ExactArgs(1),
		RunE: runSeed,
	}
	cmd.Flags().Bool("tokens", false, "print a signed token for every imported user")
	cmd.Flags().Duration("token-ttl", 24*time.Hour, "lifetime of printed tokens")
	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	withTokens, _ := cmd.Flags().GetBool("tokens")
	ttl, _ := cmd.Flags().GetDuration("token-ttl")

	fx, err := loadFixture(args[0])
	if err != nil {
		return err
	}
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	db, err := repositories.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := repositories.Migrate(cmd.Context(), db); err != nil {
		return err
	}

	users := services.NewUserService(repositories.NewUserRepository(db), repositories.NewTeamRepository(db), log)
	ids, err := users.Import(cmd.Context(), fx)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"users": len(fx.Users), "teams": len(fx.Teams)}).Info("fixture imported")
	return printIDs(cmd.OutOrStdout(), ids, withTokens, []byte(cfg.Auth.JWTSecret), ttl)
}

func loadFixture(path string) (services.DirectoryFixture, error) {
	var fx services.DirectoryFixture
	f, err := os.Open(path)
	if err != nil {
		return fx, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return fx, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return fx, nil
}

func printIDs(w io.Writer, ids map[string]int64, withTokens bool, secret []byte, ttl time.Duration) error {
	keys := make([]string, 0, len(ids))
	for k := range ids {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !withTokens {
			fmt.Fprintf(w, "%s\t%d\n", k, ids[k])
			continue
		}
		tok, err := middleware.IssueToken(secret, ids[k], ttl)
		if err != nil {
			return fmt.Errorf("sign token for %s: %w", k, err)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", k, ids[k], tok)
	}
	return nil
}
