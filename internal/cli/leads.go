package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/calliof/switchboard/internal/config"
	"github.com/calliof/switchboard/internal/store"
)

func newLeadsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leads",
		Short: "List contact-form leads collected while no agent was online",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}
			if cfg.Store.Driver != "sqlite" {
				return fmt.Errorf("leads are only persisted with the sqlite store driver")
			}

			db, err := store.Open(paths.DatabasePath(&cfg), log)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			leads, err := store.NewSQLiteLeadStore(db).List(limit)
			if err != nil {
				return err
			}
			if len(leads) == 0 {
				fmt.Println("no leads recorded")
				return nil
			}
			for _, l := range leads {
				fmt.Printf("%s  %s  user=%s\n", l.CreatedAt.Format(time.DateTime), l.ID, l.UserID)
				for k, v := range l.Contact {
					fmt.Printf("    %s: %s\n", k, v)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of leads to show")
	return cmd
}
