package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cxcds/usint-in-go/pkg/config"
	"github.com/cxcds/usint-in-go/pkg/db"
	"github.com/cxcds/usint-in-go/pkg/notify"
	"github.com/cxcds/usint-in-go/pkg/obsss"
	"github.com/cxcds/usint-in-go/pkg/ocat"
	"github.com/cxcds/usint-in-go/pkg/server"
	"github.com/cxcds/usint-in-go/pkg/server/endpoints"
	gormstore "github.com/cxcds/usint-in-go/pkg/server/store/gorm"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Usint application server",
	Long: `Run the Usint application server.

The server needs the local revision database (DATABASE_URL or database_url
in usint.yml) and the read-only observation catalog (USINT_CATALOG_URL or
catalog_url).

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()

		if cfg.DatabaseURL == "" && os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		gormDB, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		ctx := context.Background()
		catalog, err := ocat.Connect(ctx, cfg.CatalogURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to catalog:", err)
			os.Exit(1)
		}

		var support server.SupportData
		cache, err := obsss.Open(cfg.ObsSSDir)
		if err != nil {
			// The support files are advisory; run without them
			log.Printf("obs_ss support files unavailable: %v", err)
			support = emptySupport{}
		} else {
			defer func() { _ = cache.Close() }()
			support = cache
		}

		notifier := notify.NewNotifier(cfg.SendmailPath, cfg.TestNotifications, cfg.Admins)

		addr, _ := cmd.Flags().GetString("bind-address")
		if addr == "" {
			addr = cfg.BindAddress
		}

		s := server.NewServer(cfg, gormDB, ocat.NewReader(catalog), support, notifier, addr)
		s.Users = gormstore.NewUsersStore(gormDB)
		s.Revisions = gormstore.NewRevisionsStore(gormDB)
		s.Signoffs = gormstore.NewSignoffsStore(gormDB)
		s.Schedules = gormstore.NewSchedulesStore(gormDB)
		s.Parameters = gormstore.NewParametersStore(gormDB)
		s.Health = gormstore.NewHealthStore(gormDB)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s...\n", addr)
		log.Fatal(s.Start())
	},
}

// emptySupport stands in when the obs_ss directory is not available.
type emptySupport struct{}

func (emptySupport) OnORList(int64) bool              { return false }
func (emptySupport) PlannedRoll(int64) (string, bool) { return "", false }

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (host:port)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
