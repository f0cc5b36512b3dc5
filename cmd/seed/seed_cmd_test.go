package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/seed"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFlags(t *testing.T, args ...string) (seedOptions, *seed.Profile, error) {
	t.Helper()
	var captured seedOptions
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(args))

	// Read the options back through the flag set the command registered.
	f := cmd.Flags()
	captured.profilePath, _ = f.GetString("profile")
	captured.admins, _ = f.GetInt("admins")
	captured.pastors, _ = f.GetInt("pastors")
	captured.leaders, _ = f.GetInt("leaders")
	captured.members, _ = f.GetInt("members")
	captured.locations, _ = f.GetInt("locations")
	captured.perLeader, _ = f.GetInt("disciples-per-leader")
	captured.domain, _ = f.GetString("domain")
	captured.password, _ = f.GetString("password")

	p, err := resolveProfile(testutil.Config(), f, captured)
	return captured, &p, err
}

func TestResolveProfileDefaults(t *testing.T) {
	_, p, err := parseFlags(t)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultProfile().Counts, p.Counts)
	assert.Equal(t, "igreja.test", p.Domain)
}

func TestResolveProfileFlagsOverride(t *testing.T) {
	_, p, err := parseFlags(t, "--members", "12", "--leaders", "0", "--domain", "celula.org", "--locations", "2")
	require.NoError(t, err)
	assert.Equal(t, 12, p.Counts.Member)
	assert.Equal(t, 0, p.Counts.Leader)
	assert.Equal(t, 5, p.Counts.Pastor)
	assert.Equal(t, 2, p.Locations)
	assert.Equal(t, "membro@celula.org", p.CanonicalEmail(seed.TierMember))
}

func TestResolveProfileFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("counts:\n  member: 40\n  admin: 2\nlocations: 6\n"), 0o600))

	_, p, err := parseFlags(t, "--profile", path, "--admins", "1")
	require.NoError(t, err)
	assert.Equal(t, 40, p.Counts.Member)
	assert.Equal(t, 1, p.Counts.Admin)
	assert.Equal(t, 6, p.Locations)
}

func TestResolveProfileRejectsInvalid(t *testing.T) {
	_, _, err := parseFlags(t, "--password", "curta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestPrintCredentials(t *testing.T) {
	var buf bytes.Buffer
	printCredentials(&buf, seed.DefaultProfile().Credentials())

	out := buf.String()
	assert.Contains(t, out, "ACCOUNT")
	assert.Contains(t, out, "admin@igreja.com")
	assert.Contains(t, out, "lider@igreja.com")
	assert.Contains(t, out, "senha123")
}

func TestPrintNotifier(t *testing.T) {
	var buf bytes.Buffer
	printNotifier(&buf).Notify(seed.Notification{Level: seed.LevelError, Title: "Erro ao criar grupos", Message: "boom"})
	assert.Equal(t, "[error] Erro ao criar grupos: boom\n", buf.String())
}

func TestResolveProfileRejectsOversizedFlags(t *testing.T) {
	_, _, err := parseFlags(t, "--members", "9223372036854775807", "--admins", "9223372036854775807")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counts.member must be at most")

	_, _, err = parseFlags(t, "--locations", "50000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locations must be between")
}
