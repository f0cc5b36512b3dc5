package seed

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"gopkg.in/yaml.v3"
)

// Tier is a provisioning category. Tiers only exist while seeding; pastors
// are persisted with the leader role.
type Tier string

const (
	TierAdmin  Tier = "admin"
	TierPastor Tier = "pastor"
	TierLeader Tier = "leader"
	TierMember Tier = "member"
)

// Tiers lists the tiers in provisioning order.
var Tiers = []Tier{TierAdmin, TierPastor, TierLeader, TierMember}

// Role is the role value persisted for accounts of this tier.
func (t Tier) Role() string {
	if t == TierPastor {
		return string(TierLeader)
	}
	return string(t)
}

var canonicalNames = map[Tier]string{
	TierAdmin:  "Administrador",
	TierPastor: "Pastor Presidente",
	TierLeader: "Líder de Célula",
	TierMember: "Membro da Igreja",
}

// Counts is the number of accounts planned per tier.
type Counts struct {
	Admin  int `yaml:"admin" json:"admin"`
	Pastor int `yaml:"pastor" json:"pastor"`
	Leader int `yaml:"leader" json:"leader"`
	Member int `yaml:"member" json:"member"`
}

func (c Counts) For(t Tier) int {
	switch t {
	case TierAdmin:
		return c.Admin
	case TierPastor:
		return c.Pastor
	case TierLeader:
		return c.Leader
	case TierMember:
		return c.Member
	}
	return 0
}

func (c Counts) Total() int {
	return c.Admin + c.Pastor + c.Leader + c.Member
}

// Profile configures one seed run.
type Profile struct {
	Counts             Counts `yaml:"counts"`
	Locations          int    `yaml:"locations"`
	DisciplesPerLeader int    `yaml:"disciples_per_leader"`
	Domain             string `yaml:"domain"`
	Password           string `yaml:"password"`

	// Canonical maps each tier to the address its first account gets. A
	// value without "@" is a local part completed with Domain.
	Canonical map[Tier]string `yaml:"canonical"`
}

func DefaultProfile() Profile {
	return Profile{
		Counts:             Counts{Admin: 3, Pastor: 5, Leader: 15, Member: 80},
		Locations:          10,
		DisciplesPerLeader: 5,
		Domain:             "igreja.com",
		Password:           "senha123",
		Canonical: map[Tier]string{
			TierAdmin:  "admin",
			TierPastor: "pastor",
			TierLeader: "lider",
			TierMember: "membro",
		},
	}
}

// LoadProfile reads a YAML profile on top of DefaultProfile. An empty path
// returns the defaults.
func LoadProfile(path string) (Profile, error) {
	p, err := loadOnto(DefaultProfile(), path)
	if err != nil {
		return p, err
	}
	return p, p.Validate()
}

// ProfileFromConfig layers the environment defaults (email domain and
// password) and then the profile file named by cfg over DefaultProfile.
// The result is not validated, so callers can apply further overrides.
func ProfileFromConfig(cfg *config.Config) (Profile, error) {
	p := DefaultProfile()
	if cfg.SeedEmailDomain != "" {
		p.Domain = cfg.SeedEmailDomain
	}
	if cfg.SeedDefaultPassword != "" {
		p.Password = cfg.SeedDefaultPassword
	}
	return loadOnto(p, cfg.SeedProfilePath)
}

func loadOnto(p Profile, path string) (Profile, error) {
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read seed profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse seed profile: %w", err)
	}
	return p, nil
}

// Upper bounds of a single run. Plans are allocated up front, so the
// bounds also keep Counts.Total from overflowing.
const (
	MaxTierCount = 10000
	MaxAccounts  = 20000
	MaxLocations = 10000
)

func (p Profile) Validate() error {
	var errs []error
	total := 0
	for _, t := range Tiers {
		n := p.Counts.For(t)
		switch {
		case n < 0:
			errs = append(errs, fmt.Errorf("counts.%s must not be negative", t))
		case n > MaxTierCount:
			errs = append(errs, fmt.Errorf("counts.%s must be at most %d", t, MaxTierCount))
		default:
			total += n
		}
	}
	if total > MaxAccounts {
		errs = append(errs, fmt.Errorf("counts must add up to at most %d accounts", MaxAccounts))
	}
	if p.Locations < 1 || p.Locations > MaxLocations {
		errs = append(errs, fmt.Errorf("locations must be between 1 and %d", MaxLocations))
	}
	if p.DisciplesPerLeader < 1 || p.DisciplesPerLeader > MaxTierCount {
		errs = append(errs, fmt.Errorf("disciples_per_leader must be between 1 and %d", MaxTierCount))
	}
	if strings.TrimSpace(p.Domain) == "" {
		errs = append(errs, errors.New("domain is required"))
	}
	if len(p.Password) < 8 {
		errs = append(errs, errors.New("password must be at least 8 characters"))
	}
	for _, t := range Tiers {
		if strings.TrimSpace(p.Canonical[t]) == "" {
			errs = append(errs, fmt.Errorf("canonical.%s is required", t))
		}
	}
	return errors.Join(errs...)
}

// CanonicalEmail is the deterministic address of the first account of t.
func (p Profile) CanonicalEmail(t Tier) string {
	v := strings.ToLower(strings.TrimSpace(p.Canonical[t]))
	if strings.Contains(v, "@") {
		return v
	}
	return v + "@" + p.Domain
}

// Credential is a login pair for one of the canonical accounts.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials are the demo logins returned by a finished run. They are
// derived from the profile, so a pair only works if the first account of
// its tier was created.
type Credentials struct {
	Admin  Credential `json:"admin"`
	Pastor Credential `json:"pastor"`
	Leader Credential `json:"leader"`
	Member Credential `json:"member"`
}

func (p Profile) Credentials() *Credentials {
	cred := func(t Tier) Credential {
		return Credential{Email: p.CanonicalEmail(t), Password: p.Password}
	}
	return &Credentials{
		Admin:  cred(TierAdmin),
		Pastor: cred(TierPastor),
		Leader: cred(TierLeader),
		Member: cred(TierMember),
	}
}
