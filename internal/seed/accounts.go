package seed

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/google/uuid"
)

// Account is a planned or created seed account. ID is set once the
// identity exists.
type Account struct {
	ID       uuid.UUID
	Tier     Tier
	Name     string
	Email    string
	Password string
}

func (a Account) Role() string { return a.Tier.Role() }

// PlanAccounts lays out the accounts of a run in tier order. The first
// account of every tier gets the canonical email of the profile.
func (s *Seeder) PlanAccounts(counts Counts) []Account {
	plan := make([]Account, 0, counts.Total())
	for _, tier := range Tiers {
		for i := 0; i < counts.For(tier); i++ {
			acc := Account{Tier: tier, Password: s.profile.Password}
			if i == 0 {
				acc.Name = canonicalNames[tier]
				acc.Email = s.profile.CanonicalEmail(tier)
			} else {
				acc.Name = s.gen.RandomName()
				acc.Email = s.gen.RandomEmail(acc.Name)
			}
			plan = append(plan, acc)
		}
	}
	return plan
}

// ProvisionAccounts creates an identity and then a profile for every
// planned account, one at a time. A failure skips that account only: a
// failed identity leaves nothing behind, a failed profile leaves the
// identity in place. Only accounts with both are returned, so later stages
// silently work with fewer accounts.
func (s *Seeder) ProvisionAccounts(counts Counts) []Account {
	plan := s.PlanAccounts(counts)
	created := make([]Account, 0, len(plan))

	for _, acc := range plan {
		id, err := s.store.CreateIdentity(acc.Email, acc.Password, map[string]any{
			"name": acc.Name,
			"role": acc.Role(),
		})
		if err != nil {
			s.log.Warn("skipping account", "stage", "accounts", "email", acc.Email,
				"error", fmt.Errorf("%w: %v", ErrIdentityCreationFailed, err))
			continue
		}
		acc.ID = id

		profile := &models.User{
			ID:    id,
			Name:  acc.Name,
			Email: acc.Email,
			Role:  acc.Role(),
		}
		if err := s.store.InsertProfile(profile); err != nil {
			s.log.Warn("skipping account", "stage", "accounts", "email", acc.Email, "user_id", id.String(),
				"error", fmt.Errorf("%w: %v", ErrProfileInsertFailed, err))
			continue
		}

		created = append(created, acc)
	}
	return created
}
