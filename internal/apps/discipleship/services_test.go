package discipleship

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db            *gorm.DB
	svc           *DiscipleshipService
	admin, leader access.Viewer
	other, member access.Viewer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	viewer := func(u *models.User) access.Viewer { return access.Viewer{UserID: u.ID, Role: u.Role} }
	return &fixture{
		db:     db,
		svc:    NewDiscipleshipService(db),
		admin:  viewer(testutil.CreateUser(t, db, "Admin", "admin@igreja.test", models.RoleAdmin)),
		leader: viewer(testutil.CreateUser(t, db, "Lider", "lider@igreja.test", models.RoleLeader)),
		other:  viewer(testutil.CreateUser(t, db, "Outro Lider", "outro@igreja.test", models.RoleLeader)),
		member: viewer(testutil.CreateUser(t, db, "Membro", "membro@igreja.test", models.RoleMember)),
	}
}

func TestCreateDiscipleshipRules(t *testing.T) {
	f := newFixture(t)

	d, err := f.svc.Create(f.leader, &CreateDiscipleshipRequest{DiscipuloID: f.member.UserID})
	require.NoError(t, err)
	assert.Equal(t, f.leader.UserID, d.DiscipuladorID)

	tests := []struct {
		name   string
		viewer access.Viewer
		req    CreateDiscipleshipRequest
		want   error
	}{
		{"duplicate", f.leader, CreateDiscipleshipRequest{DiscipuloID: f.member.UserID}, ErrAlreadyLinked},
		{"self link", f.leader, CreateDiscipleshipRequest{DiscipuloID: f.leader.UserID}, ErrSelfLink},
		{"leader for someone else", f.leader, CreateDiscipleshipRequest{DiscipuladorID: f.other.UserID, DiscipuloID: f.member.UserID}, ErrForbidden},
		{"member", f.member, CreateDiscipleshipRequest{DiscipuloID: f.leader.UserID}, ErrForbidden},
		{"admin with member as discipulador", f.admin, CreateDiscipleshipRequest{DiscipuladorID: f.member.UserID, DiscipuloID: f.leader.UserID}, ErrInvalidLeader},
		{"unknown discipulo", f.leader, CreateDiscipleshipRequest{DiscipuloID: uuid.New()}, ErrDiscipleNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(tt.viewer, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// Leaders can themselves be discipled by another leader.
	_, err = f.svc.Create(f.admin, &CreateDiscipleshipRequest{DiscipuladorID: f.other.UserID, DiscipuloID: f.leader.UserID})
	require.NoError(t, err)
}

func TestListVisibility(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(f.leader, &CreateDiscipleshipRequest{DiscipuloID: f.member.UserID})
	require.NoError(t, err)
	_, err = f.svc.Create(f.admin, &CreateDiscipleshipRequest{DiscipuladorID: f.other.UserID, DiscipuloID: f.leader.UserID})
	require.NoError(t, err)

	all, err := f.svc.List(f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.svc.List(f.leader)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	asMember, err := f.svc.List(f.member)
	require.NoError(t, err)
	require.Len(t, asMember, 1)
	assert.Equal(t, "Lider", asMember[0].DiscipuladorName)
	assert.Equal(t, "Membro", asMember[0].DiscipuloName)

	otherView, err := f.svc.List(f.other)
	require.NoError(t, err)
	assert.Len(t, otherView, 1)
}

func TestMeetings(t *testing.T) {
	f := newFixture(t)
	fixed := time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return fixed }

	d, err := f.svc.Create(f.leader, &CreateDiscipleshipRequest{DiscipuloID: f.member.UserID})
	require.NoError(t, err)

	m, err := f.svc.LogMeeting(f.leader, d.ID, &LogMeetingRequest{Topic: " Oração ", Notes: "bom encontro"})
	require.NoError(t, err)
	assert.Equal(t, "Oração", m.Topic)
	assert.True(t, m.Date.Equal(fixed))

	earlier := fixed.AddDate(0, 0, -7)
	_, err = f.svc.LogMeeting(f.admin, d.ID, &LogMeetingRequest{Topic: "Fé", Date: &earlier})
	require.NoError(t, err)

	_, err = f.svc.LogMeeting(f.leader, d.ID, &LogMeetingRequest{Topic: "  "})
	assert.ErrorIs(t, err, ErrTopicRequired)
	_, err = f.svc.LogMeeting(f.member, d.ID, &LogMeetingRequest{Topic: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.LogMeeting(f.other, d.ID, &LogMeetingRequest{Topic: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	meetings, err := f.svc.ListMeetings(f.member, d.ID)
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "Oração", meetings[0].Topic)

	assert.ErrorIs(t, f.svc.DeleteMeeting(f.member, d.ID, m.ID), ErrForbidden)
	require.NoError(t, f.svc.DeleteMeeting(f.leader, d.ID, m.ID))
	assert.ErrorIs(t, f.svc.DeleteMeeting(f.leader, d.ID, m.ID), ErrMeetingNotFound)
}

func TestDeleteRemovesMeetings(t *testing.T) {
	f := newFixture(t)
	d, err := f.svc.Create(f.leader, &CreateDiscipleshipRequest{DiscipuloID: f.member.UserID})
	require.NoError(t, err)
	_, err = f.svc.LogMeeting(f.leader, d.ID, &LogMeetingRequest{Topic: "Fé"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(f.member, d.ID), ErrForbidden)
	require.NoError(t, f.svc.Delete(f.leader, d.ID))

	var meetings int64
	f.db.Model(&models.Meeting{}).Count(&meetings)
	assert.Zero(t, meetings)

	_, err = f.svc.Get(f.admin, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
