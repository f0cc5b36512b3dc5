package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/database"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/logging"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/seed"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type seedOptions struct {
	profilePath string
	admins      int
	pastors     int
	leaders     int
	members     int
	locations   int
	perLeader   int
	domain      string
	password    string
	seed        int64
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo data for the discipleship backend",
		Long: `Creates accounts (admins, pastors, leaders, members), células at
generated locations, group memberships, discipleships and backdated
encontros, then prints the four canonical logins.

Every run adds a new data set; the canonical accounts of a second run are
skipped because their emails already exist.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.profilePath, "profile", "", "YAML seed profile (default: $SEED_PROFILE_PATH)")
	f.IntVar(&opts.admins, "admins", 0, "number of admin accounts")
	f.IntVar(&opts.pastors, "pastors", 0, "number of pastor accounts (stored as leaders)")
	f.IntVar(&opts.leaders, "leaders", 0, "number of leader accounts")
	f.IntVar(&opts.members, "members", 0, "number of member accounts")
	f.IntVar(&opts.locations, "locations", 0, "number of group locations, the main one included")
	f.IntVar(&opts.perLeader, "disciples-per-leader", 0, "discípulos linked to each leader")
	f.StringVar(&opts.domain, "domain", "", "email domain of the canonical accounts")
	f.StringVar(&opts.password, "password", "", "password of every seeded account")
	f.Int64Var(&opts.seed, "seed", 0, "random seed for reproducible data (0 picks one)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log every stage")

	return cmd
}

// resolveProfile layers, lowest first: defaults, environment, profile file,
// explicitly set flags.
func resolveProfile(cfg *config.Config, flags *pflag.FlagSet, opts seedOptions) (seed.Profile, error) {
	if opts.profilePath != "" {
		cfg.SeedProfilePath = opts.profilePath
	}
	profile, err := seed.ProfileFromConfig(cfg)
	if err != nil {
		return profile, err
	}

	setInt := func(name string, dst *int, v int) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	setInt("admins", &profile.Counts.Admin, opts.admins)
	setInt("pastors", &profile.Counts.Pastor, opts.pastors)
	setInt("leaders", &profile.Counts.Leader, opts.leaders)
	setInt("members", &profile.Counts.Member, opts.members)
	setInt("locations", &profile.Locations, opts.locations)
	setInt("disciples-per-leader", &profile.DisciplesPerLeader, opts.perLeader)
	if flags.Changed("domain") {
		profile.Domain = opts.domain
	}
	if flags.Changed("password") {
		profile.Password = opts.password
	}

	return profile, profile.Validate()
}

func newRand(n int64) *rand.Rand {
	return rand.New(rand.NewSource(n))
}

func runSeed(cmd *cobra.Command, opts seedOptions) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelInfo
	}
	logging.SetupWriter(cmd.ErrOrStderr(), level)

	cfg := config.Load()
	profile, err := resolveProfile(cfg, cmd.Flags(), opts)
	if err != nil {
		return fmt.Errorf("invalid seed profile: %w", err)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := database.Connect(cfg); err != nil {
		return err
	}
	if err := database.MigrateShared(database.DB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	pgLogHandler := logging.NewPGHandler(database.DB)
	defer pgLogHandler.Stop()
	slog.SetDefault(slog.New(logging.NewMultiHandler(slog.Default().Handler(), pgLogHandler)))

	out := cmd.OutOrStdout()
	store := seed.NewGormStore(database.DB, services.NewAuthService(database.DB, cfg))
	seedOpts := []seed.Option{
		seed.WithNotifier(printNotifier(out)),
		seed.WithLogger(slog.Default()),
	}
	if opts.seed != 0 {
		seedOpts = append(seedOpts, seed.WithRand(newRand(opts.seed)))
	}

	creds, err := seed.New(store, profile, seedOpts...).Run()
	if err != nil {
		sentry.CaptureException(err)
		return err
	}
	if creds == nil {
		fmt.Fprintln(out, "No groups were created; memberships, discipleships and encontros were skipped.")
		return nil
	}

	printCredentials(out, creds)
	return nil
}

func printNotifier(w io.Writer) seed.Notifier {
	return seed.NotifierFunc(func(n seed.Notification) {
		fmt.Fprintf(w, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
	})
}

func printCredentials(w io.Writer, creds *seed.Credentials) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tEMAIL\tPASSWORD")
	for _, row := range []struct {
		label string
		cred  seed.Credential
	}{
		{"admin", creds.Admin},
		{"pastor", creds.Pastor},
		{"leader", creds.Leader},
		{"member", creds.Member},
	} {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.label, row.cred.Email, row.cred.Password)
	}
	tw.Flush()
}
