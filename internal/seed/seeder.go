package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Seeder runs the test-data workflow: accounts, groups, group membership,
// discipleships and meetings, in that order. Every stage reads what the
// previous one persisted. Nothing is retried or rolled back, and running it
// twice creates a second data set next to the first.
type Seeder struct {
	store   Store
	profile Profile
	gen     *Generator
	notify  Notifier
	log     *slog.Logger
	now     func() time.Time
}

type Option func(*Seeder)

// WithRand makes the generated data reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(s *Seeder) { s.gen = NewGenerator(rng) }
}

func WithNotifier(n Notifier) Option {
	return func(s *Seeder) { s.notify = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Seeder) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

func New(store Store, profile Profile, opts ...Option) *Seeder {
	s := &Seeder{
		store:   store,
		profile: profile,
		notify:  discardNotifier{},
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = NewGenerator(nil)
	}
	return s
}

// Run executes every stage and returns the canonical demo credentials.
// It returns (nil, nil) when no groups exist after group creation; the
// remaining stages are skipped in that case. A returned error has already
// been surfaced through the notifier.
func (s *Seeder) Run() (*Credentials, error) {
	creds, err := s.run()
	if err != nil {
		s.log.Error("seed run failed", "stage", "run", "error", err)
		s.notify.Notify(Notification{
			Level:   LevelError,
			Title:   "Erro ao gerar dados",
			Message: err.Error(),
		})
		return nil, err
	}
	return creds, nil
}

func (s *Seeder) run() (*Credentials, error) {
	if err := s.profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed profile: %w", err)
	}
	started := s.now()

	accounts := s.ProvisionAccounts(s.profile.Counts)
	leaders, members := splitPools(accounts)
	s.log.Info("accounts provisioned", "stage", "accounts",
		"planned", s.profile.Counts.Total(), "created", len(accounts),
		"leaders", len(leaders), "members", len(members))

	locations := s.gen.ChurchLocations(s.profile.Locations)
	if err := s.CreateGroups(locations, leaders); err != nil {
		if errors.Is(err, ErrEmptyLeaderPool) {
			return nil, err
		}
		s.reportBulkFailure("grupos", err)
	}

	if _, err := s.AssignMembersToGroups(members); err != nil {
		if errors.Is(err, ErrNoGroups) {
			s.log.Warn("no groups available, stopping early", "stage", "groups", "error", err)
			return nil, nil
		}
		return nil, err
	}

	if _, err := s.LinkDiscipleships(leaders, members); err != nil {
		s.reportBulkFailure("discipulados", err)
	}

	if _, err := s.SeedMeetings(); err != nil {
		s.reportBulkFailure("encontros", err)
	}

	s.log.Info("seed run finished", "stage", "run", "latency_ms", float64(s.now().Sub(started).Milliseconds()))
	s.notify.Notify(Notification{
		Level:   LevelSuccess,
		Title:   "Dados de teste gerados",
		Message: fmt.Sprintf("%d contas criadas", len(accounts)),
	})
	return s.profile.Credentials(), nil
}

func (s *Seeder) reportBulkFailure(table string, err error) {
	s.log.Error("bulk insert failed", "stage", table, "error", err)
	s.notify.Notify(Notification{
		Level:   LevelError,
		Title:   "Erro ao criar " + table,
		Message: err.Error(),
	})
}

// splitPools separates the accounts that can lead (pastors and leaders)
// from members, keeping creation order. Admins belong to neither pool.
func splitPools(accounts []Account) (leaders, members []Account) {
	for _, a := range accounts {
		switch a.Tier {
		case TierPastor, TierLeader:
			leaders = append(leaders, a)
		case TierMember:
			members = append(members, a)
		}
	}
	return leaders, members
}
