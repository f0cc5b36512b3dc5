package growthplans

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshStatus(t *testing.T) {
	tests := []struct {
		name  string
		steps []Step
		want  string
	}{
		{"no steps", nil, StatusActive},
		{"pending step", []Step{{Title: "a", Done: true}, {Title: "b"}}, StatusActive},
		{"all done", []Step{{Title: "a", Done: true}, {Title: "b", Done: true}}, StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &GrowthPlan{Steps: tt.steps}
			p.refreshStatus()
			assert.Equal(t, tt.want, p.Status)
		})
	}
}

func setup(t *testing.T) (*PlanService, access.Viewer, access.Viewer, access.Viewer, access.Viewer) {
	t.Helper()
	db := testutil.NewTestDB(t, New().Models()...)
	viewer := func(u *models.User) access.Viewer { return access.Viewer{UserID: u.ID, Role: u.Role} }

	admin := viewer(testutil.CreateUser(t, db, "Admin", "admin@igreja.test", models.RoleAdmin))
	leader := viewer(testutil.CreateUser(t, db, "Lider", "lider@igreja.test", models.RoleLeader))
	member := viewer(testutil.CreateUser(t, db, "Membro", "membro@igreja.test", models.RoleMember))
	stranger := viewer(testutil.CreateUser(t, db, "Outro", "outro@igreja.test", models.RoleMember))
	require.NoError(t, db.Create(&models.Discipleship{DiscipuladorID: leader.UserID, DiscipuloID: member.UserID}).Error)

	return NewPlanService(db), admin, leader, member, stranger
}

func TestCreatePlanPermissions(t *testing.T) {
	svc, admin, leader, member, stranger := setup(t)

	own, err := svc.Create(member, &CreatePlanRequest{Title: "Leitura", Steps: []string{"Gênesis", " ", "Êxodo"}})
	require.NoError(t, err)
	assert.Equal(t, member.UserID, own.UserID)
	assert.Len(t, own.Steps, 2)
	assert.Equal(t, StatusActive, own.Status)

	forDisciple, err := svc.Create(leader, &CreatePlanRequest{UserID: member.UserID, Title: "Batismo"})
	require.NoError(t, err)
	assert.Equal(t, leader.UserID, forDisciple.CreatedBy)

	_, err = svc.Create(leader, &CreatePlanRequest{UserID: stranger.UserID, Title: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(stranger, &CreatePlanRequest{UserID: member.UserID, Title: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(admin, &CreatePlanRequest{UserID: stranger.UserID, Title: "x"})
	require.NoError(t, err)

	_, err = svc.Create(member, &CreatePlanRequest{Title: " "})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestListPlans(t *testing.T) {
	svc, admin, leader, member, stranger := setup(t)
	_, err := svc.Create(member, &CreatePlanRequest{Title: "Leitura"})
	require.NoError(t, err)
	_, err = svc.Create(stranger, &CreatePlanRequest{Title: "Oração"})
	require.NoError(t, err)
	_, err = svc.Create(leader, &CreatePlanRequest{Title: "Liderança"})
	require.NoError(t, err)

	count := func(v access.Viewer) int {
		plans, err := svc.List(v, "")
		require.NoError(t, err)
		return len(plans)
	}
	assert.Equal(t, 3, count(admin))
	assert.Equal(t, 2, count(leader))
	assert.Equal(t, 1, count(member))
	assert.Equal(t, 1, count(stranger))

	completed, err := svc.List(admin, StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestToggleStepCompletesPlan(t *testing.T) {
	svc, _, leader, member, stranger := setup(t)
	plan, err := svc.Create(leader, &CreatePlanRequest{UserID: member.UserID, Title: "Fundamentos", Steps: []string{"Fé", "Oração"}})
	require.NoError(t, err)

	_, err = svc.ToggleStep(member, plan.ID, 0)
	require.NoError(t, err)
	plan, err = svc.ToggleStep(leader, plan.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, plan.Status)

	reloaded, err := svc.Get(member, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, reloaded.Status)
	assert.True(t, reloaded.Steps[0].Done)
	assert.True(t, reloaded.Steps[1].Done)

	plan, err = svc.ToggleStep(member, plan.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, plan.Status)

	_, err = svc.ToggleStep(member, plan.ID, 5)
	assert.ErrorIs(t, err, ErrInvalidStep)
	_, err = svc.ToggleStep(stranger, plan.ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAndDeletePlan(t *testing.T) {
	svc, _, leader, member, _ := setup(t)
	plan, err := svc.Create(member, &CreatePlanRequest{Title: "Leitura", Steps: []string{"a"}})
	require.NoError(t, err)
	_, err = svc.ToggleStep(member, plan.ID, 0)
	require.NoError(t, err)

	title := "Leitura diária"
	steps := []string{"Salmos", "Provérbios"}
	updated, err := svc.Update(leader, plan.ID, &UpdatePlanRequest{Title: &title, Steps: &steps})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Len(t, updated.Steps, 2)
	assert.Equal(t, StatusActive, updated.Status)

	blank := " "
	_, err = svc.Update(member, plan.ID, &UpdatePlanRequest{Title: &blank})
	assert.ErrorIs(t, err, ErrTitleRequired)

	require.NoError(t, svc.Delete(member, plan.ID))
	_, err = svc.Get(member, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
