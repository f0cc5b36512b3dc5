package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/apps"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/apps/community"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/apps/discipleship"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/apps/groups"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/apps/growthplans"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/dto"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/routes"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/services"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testAPI struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newAPI(t *testing.T, seedEnabled bool) *testAPI {
	t.Helper()
	cfg := testutil.Config()
	cfg.SeedEnabled = seedEnabled

	var owned []interface{}
	owned = append(owned, growthplans.New().Models()...)
	owned = append(owned, community.New(nil).Models()...)
	db := testutil.NewTestDB(t, owned...)

	moderation := services.NewModerationService(db)
	plugins := []apps.Plugin{
		groups.New(),
		discipleship.New(),
		growthplans.New(),
		community.New(moderation),
	}

	auth := services.NewAuthService(db, cfg)
	app := fiber.New()
	routes.Setup(app, cfg, db, routes.Handlers{
		Auth:       handlers.NewAuthHandler(auth),
		Health:     handlers.NewHealthHandler(db, len(plugins)),
		User:       handlers.NewUserHandler(services.NewUserService(db)),
		Moderation: handlers.NewModerationHandler(moderation),
		Seed:       handlers.NewSeedHandler(db, cfg, auth),
	}, plugins)

	return &testAPI{t: t, app: app, db: db, cfg: cfg}
}

func (a *testAPI) do(method, path, token string, body any, out any) int {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	var resp dto.AuthResponse
	status := a.do("POST", "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password}, &resp)
	require.Equal(a.t, fiber.StatusOK, status)
	return resp.AccessToken
}

func TestHealth(t *testing.T) {
	api := newAPI(t, false)

	var health dto.HealthResponse
	assert.Equal(t, fiber.StatusOK, api.do("GET", "/api/health", "", nil, &health))
	assert.Equal(t, "ok", health.DB)
	assert.Equal(t, 4, health.Modules)
}

func TestAuthFlow(t *testing.T) {
	api := newAPI(t, false)

	var reg dto.AuthResponse
	status := api.do("POST", "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ana", Email: "ana@igreja.test", Password: "senha1234",
	}, &reg)
	require.Equal(t, fiber.StatusCreated, status)

	assert.Equal(t, fiber.StatusConflict, api.do("POST", "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ana", Email: "ana@igreja.test", Password: "senha1234",
	}, nil))
	assert.Equal(t, fiber.StatusUnauthorized, api.do("POST", "/api/auth/login", "", dto.LoginRequest{
		Email: "ana@igreja.test", Password: "errada123",
	}, nil))

	token := api.login("ana@igreja.test", "senha1234")

	var me dto.UserResponse
	require.Equal(t, fiber.StatusOK, api.do("GET", "/api/me", token, nil, &me))
	assert.Equal(t, "Ana", me.Name)
	assert.Equal(t, models.RoleMember, me.Role)

	require.Equal(t, fiber.StatusOK, api.do("PUT", "/api/me", token, dto.UpdateProfileRequest{Name: "Ana Maria"}, &me))
	assert.Equal(t, "Ana Maria", me.Name)

	var refreshed dto.AuthResponse
	require.Equal(t, fiber.StatusOK, api.do("POST", "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: reg.RefreshToken}, &refreshed))
	assert.Equal(t, fiber.StatusUnauthorized, api.do("POST", "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: reg.RefreshToken}, nil))

	assert.Equal(t, fiber.StatusUnauthorized, api.do("GET", "/api/me", "", nil, nil))
	assert.Equal(t, fiber.StatusForbidden, api.do("GET", "/api/admin/users", token, nil, nil))

	assert.Equal(t, fiber.StatusBadRequest, api.do("DELETE", "/api/auth/account", token, dto.DeleteAccountRequest{}, nil))
	assert.Equal(t, fiber.StatusOK, api.do("DELETE", "/api/auth/account", token, dto.DeleteAccountRequest{Password: "senha1234"}, nil))
	assert.Equal(t, fiber.StatusUnauthorized, api.do("GET", "/api/p/groups", token, nil, nil))
}

func TestSeedDisabled(t *testing.T) {
	api := newAPI(t, false)
	admin := testutil.CreateUser(t, api.db, "Root", "root@igreja.test", models.RoleAdmin)

	assert.Equal(t, fiber.StatusForbidden, api.do("POST", "/api/admin/seed", testutil.Token(t, admin), nil, nil))
}

func TestSeedRequiresAdmin(t *testing.T) {
	api := newAPI(t, true)
	member := testutil.CreateUser(t, api.db, "Membro", "m@igreja.test", models.RoleMember)

	assert.Equal(t, fiber.StatusForbidden, api.do("POST", "/api/admin/seed", testutil.Token(t, member), nil, nil))
}

func intp(v int) *int { return &v }

type envelope[T any] struct {
	Data []T `json:"data"`
}

func TestSeedThroughAPI(t *testing.T) {
	api := newAPI(t, true)
	admin := testutil.CreateUser(t, api.db, "Root", "root@igreja.test", models.RoleAdmin)

	var resp handlers.SeedResponse
	status := api.do("POST", "/api/admin/seed", testutil.Token(t, admin), dto.SeedRequest{
		Admins: intp(1), Pastors: intp(1), Leaders: intp(2), Members: intp(6), Locations: intp(2),
	}, &resp)
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, resp.Credentials)
	assert.Equal(t, "lider@igreja.test", resp.Credentials.Leader.Email)
	assert.Equal(t, "senha123", resp.Credentials.Leader.Password)
	require.NotEmpty(t, resp.Notifications)
	assert.Equal(t, "Dados de teste gerados", resp.Notifications[len(resp.Notifications)-1].Title)

	// The canonical leader was created first, so it leads a group and
	// disciples members.
	leader := api.login(resp.Credentials.Leader.Email, resp.Credentials.Leader.Password)

	var mine envelope[models.Group]
	require.Equal(t, fiber.StatusOK, api.do("GET", "/api/p/groups/mine", leader, nil, &mine))
	assert.Len(t, mine.Data, 1)

	var edges envelope[discipleship.DiscipleshipView]
	require.Equal(t, fiber.StatusOK, api.do("GET", "/api/p/discipleships", leader, nil, &edges))
	require.NotEmpty(t, edges.Data)

	var meetings envelope[models.Meeting]
	require.Equal(t, fiber.StatusOK, api.do("GET", "/api/p/discipleships/"+edges.Data[0].ID.String()+"/meetings", leader, nil, &meetings))
	assert.NotEmpty(t, meetings.Data)

	member := api.login(resp.Credentials.Member.Email, resp.Credentials.Member.Password)
	var memberEdges envelope[discipleship.DiscipleshipView]
	require.Equal(t, fiber.StatusOK, api.do("GET", "/api/p/discipleships", member, nil, &memberEdges))
	assert.Len(t, memberEdges.Data, 1)
}

func TestSeedWithoutLeaders(t *testing.T) {
	api := newAPI(t, true)
	admin := testutil.CreateUser(t, api.db, "Root", "root@igreja.test", models.RoleAdmin)

	var resp handlers.SeedResponse
	status := api.do("POST", "/api/admin/seed", testutil.Token(t, admin), dto.SeedRequest{
		Admins: intp(0), Pastors: intp(0), Leaders: intp(0), Members: intp(2),
	}, &resp)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.True(t, resp.Error)
	assert.Nil(t, resp.Credentials)
}

func TestSeedRejectsInvalidCounts(t *testing.T) {
	api := newAPI(t, true)
	admin := testutil.CreateUser(t, api.db, "Root", "root@igreja.test", models.RoleAdmin)

	token := testutil.Token(t, admin)

	assert.Equal(t, fiber.StatusBadRequest, api.do("POST", "/api/admin/seed", token, dto.SeedRequest{Locations: intp(0)}, nil))
	assert.Equal(t, fiber.StatusBadRequest, api.do("POST", "/api/admin/seed", token, dto.SeedRequest{Members: intp(math.MaxInt)}, nil))
	assert.Equal(t, fiber.StatusBadRequest, api.do("POST", "/api/admin/seed", token, dto.SeedRequest{Locations: intp(1 << 40)}, nil))

	var users int64
	require.NoError(t, api.db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestAdminUserManagement(t *testing.T) {
	api := newAPI(t, false)
	admin := testutil.CreateUser(t, api.db, "Root", "root@igreja.test", models.RoleAdmin)
	member := testutil.CreateUser(t, api.db, "Membro", "m@igreja.test", models.RoleMember)
	token := testutil.Token(t, admin)

	var updated dto.UserResponse
	require.Equal(t, fiber.StatusOK, api.do("PUT", "/api/admin/users/"+member.ID.String()+"/role", token,
		dto.UpdateRoleRequest{Role: models.RoleLeader}, &updated))
	assert.Equal(t, models.RoleLeader, updated.Role)
	assert.Equal(t, fiber.StatusBadRequest, api.do("PUT", "/api/admin/users/"+member.ID.String()+"/role", token,
		dto.UpdateRoleRequest{Role: "bishop"}, nil))

	var group models.Group
	require.Equal(t, fiber.StatusCreated, api.do("POST", "/api/admin/groups", token, groups.CreateGroupRequest{
		Name: "Grupo Sul", Weekday: "Sábado", LeaderID: member.ID,
	}, &group))

	// The promoted leader sees the change without a new token.
	var mine envelope[models.Group]
	require.Equal(t, fiber.StatusOK, api.do("GET", "/api/p/groups/mine", testutil.Token(t, member), nil, &mine))
	assert.Len(t, mine.Data, 1)

	var list struct {
		Users []dto.UserResponse `json:"users"`
		Total int64              `json:"total"`
	}
	require.Equal(t, fiber.StatusOK, api.do("GET", "/api/admin/users?role=leader", token, nil, &list))
	assert.EqualValues(t, 1, list.Total)

	assert.Equal(t, fiber.StatusOK, api.do("DELETE", "/api/admin/users/"+member.ID.String(), token, nil, nil))
	assert.Equal(t, fiber.StatusNotFound, api.do("DELETE", "/api/admin/users/"+member.ID.String(), token, nil, nil))
}

func TestMuralReports(t *testing.T) {
	api := newAPI(t, false)
	admin := testutil.CreateUser(t, api.db, "Root", "root@igreja.test", models.RoleAdmin)
	member := testutil.CreateUser(t, api.db, "Membro", "m@igreja.test", models.RoleMember)
	memberToken := testutil.Token(t, member)
	adminToken := testutil.Token(t, admin)

	var bad dto.ErrorResponse
	require.Equal(t, fiber.StatusBadRequest, api.do("POST", "/api/reports", memberToken, dto.CreateReportRequest{
		ContentType: "group", ContentID: uuid.New(), Reason: "ofensivo",
	}, &bad))
	assert.Equal(t, services.ErrInvalidContentType.Error(), bad.Message)
	assert.Equal(t, fiber.StatusBadRequest, api.do("POST", "/api/reports", memberToken, dto.CreateReportRequest{
		ContentType: dto.ReportContentComment, Reason: "ofensivo",
	}, nil))
	assert.Equal(t, fiber.StatusBadRequest, api.do("POST", "/api/reports", memberToken,
		map[string]string{"content_type": dto.ReportContentPost, "content_id": "not-a-uuid", "reason": "x"}, nil))

	var filed dto.ReportResponse
	require.Equal(t, fiber.StatusCreated, api.do("POST", "/api/reports", memberToken, dto.CreateReportRequest{
		ContentType: dto.ReportContentPost, ContentID: uuid.New(), Reason: "ofensivo",
	}, &filed))
	assert.Equal(t, dto.ReportStatusPending, filed.Status)

	assert.Equal(t, fiber.StatusForbidden, api.do("GET", "/api/admin/moderation/reports", memberToken, nil, nil))
	assert.Equal(t, fiber.StatusBadRequest, api.do("GET", "/api/admin/moderation/reports?status=open", adminToken, nil, nil))

	var queue dto.ReportListResponse
	require.Equal(t, fiber.StatusOK, api.do("GET", "/api/admin/moderation/reports?status=pending", adminToken, nil, &queue))
	require.Len(t, queue.Reports, 1)
	assert.Equal(t, filed.ID, queue.Reports[0].ID)

	path := "/api/admin/moderation/reports/" + filed.ID.String()
	assert.Equal(t, fiber.StatusBadRequest, api.do("PUT", path, adminToken, dto.ActionReportRequest{Status: dto.ReportStatusPending}, nil))
	assert.Equal(t, fiber.StatusOK, api.do("PUT", path, adminToken, dto.ActionReportRequest{Status: dto.ReportStatusDismissed}, nil))
	assert.Equal(t, fiber.StatusNotFound, api.do("PUT", "/api/admin/moderation/reports/"+uuid.NewString(), adminToken,
		dto.ActionReportRequest{Status: dto.ReportStatusReviewed}, nil))
}

func TestMuralBlocks(t *testing.T) {
	api := newAPI(t, false)
	me := testutil.CreateUser(t, api.db, "Ana", "ana@igreja.test", models.RoleMember)
	other := testutil.CreateUser(t, api.db, "Bia", "bia@igreja.test", models.RoleMember)
	token := testutil.Token(t, me)

	assert.Equal(t, fiber.StatusBadRequest, api.do("POST", "/api/blocks", token, dto.BlockUserRequest{}, nil))
	assert.Equal(t, fiber.StatusConflict, api.do("POST", "/api/blocks", token, dto.BlockUserRequest{BlockedID: me.ID}, nil))
	assert.Equal(t, fiber.StatusOK, api.do("POST", "/api/blocks", token, dto.BlockUserRequest{BlockedID: other.ID}, nil))
	assert.Equal(t, fiber.StatusConflict, api.do("POST", "/api/blocks", token, dto.BlockUserRequest{BlockedID: other.ID}, nil))
	assert.Equal(t, fiber.StatusBadRequest, api.do("DELETE", "/api/blocks/abc", token, nil, nil))
	assert.Equal(t, fiber.StatusOK, api.do("DELETE", "/api/blocks/"+other.ID.String(), token, nil, nil))
}
