package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadProfileEmptyPath(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)
}

func TestLoadProfileMergesDefaults(t *testing.T) {
	path := writeProfile(t, `
counts:
  member: 20
locations: 4
domain: celulas.org
canonical:
  admin: secretaria@sede.org
`)

	p, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 20, p.Counts.Member)
	assert.Equal(t, 4, p.Locations)
	assert.Equal(t, 5, p.DisciplesPerLeader)
	assert.Equal(t, "secretaria@sede.org", p.CanonicalEmail(TierAdmin))
	assert.Equal(t, "lider@celulas.org", p.CanonicalEmail(TierLeader))
}

func TestLoadProfileInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"negative count", "counts:\n  leader: -1\n", "counts.leader"},
		{"no locations", "locations: 0\n", "locations"},
		{"too many locations", "locations: 10001\n", "locations must be between 1 and 10000"},
		{"tier above cap", "counts:\n  member: 10001\n", "counts.member must be at most 10000"},
		{"total above cap", "counts:\n  admin: 10000\n  member: 10000\n  leader: 100\n", "at most 20000 accounts"},
		{"overflowing counts", "counts:\n  admin: 9223372036854775807\n  member: 9223372036854775807\n", "counts.admin must be at most"},
		{"huge disciples_per_leader", "disciples_per_leader: 9223372036854775807\n", "disciples_per_leader"},
		{"short password", "password: abc\n", "password"},
		{"blank canonical", "canonical:\n  member: \"  \"\n", "canonical.member"},
		{"bad yaml", "counts: [1, 2\n", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfile(writeProfile(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCredentialsFollowProfile(t *testing.T) {
	p := DefaultProfile()
	p.Domain = "exemplo.org"
	p.Password = "outrasenha"

	c := p.Credentials()
	assert.Equal(t, Credential{Email: "pastor@exemplo.org", Password: "outrasenha"}, c.Pastor)
	assert.Equal(t, "membro@exemplo.org", c.Member.Email)
}

func TestProfileFromConfig(t *testing.T) {
	cfg := testutil.Config()

	p, err := ProfileFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "igreja.test", p.Domain)
	assert.Equal(t, "admin@igreja.test", p.CanonicalEmail(TierAdmin))

	cfg.SeedProfilePath = writeProfile(t, "domain: arquivo.org\nlocations: 3\n")
	p, err = ProfileFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "arquivo.org", p.Domain)
	assert.Equal(t, 3, p.Locations)
	assert.Equal(t, "senha123", p.Password)
}
