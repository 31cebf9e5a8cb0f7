package cmd

import (
	"context"
	"fmt"

	"github.com/radiantjournal/radiant/internal/activity"
	"github.com/radiantjournal/radiant/internal/config"
	"github.com/radiantjournal/radiant/internal/journal"
	"github.com/radiantjournal/radiant/internal/store"
	"github.com/spf13/cobra"
)

// session is everything a data command needs: config plus the journal and
// activity stores over one open database.
type session struct {
	cfg      *config.Config
	db       *store.DB
	activity *activity.Store
	journal  *journal.Store
}

func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	kv := db.KV()
	return &session{
		cfg:      cfg,
		db:       db,
		activity: activity.NewStore(kv, activity.WithClock(clock), activity.WithLogger(logger.Named("activity"))),
		journal:  journal.NewStore(kv, logger.Named("journal")),
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// cmdContext returns the command's context, or Background when a run
// function is called directly.
func cmdContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
