package services_test

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/dto"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/services"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterContent(t *testing.T) {
	ms := services.NewModerationService(nil)

	tests := []struct {
		text   string
		ok     bool
		reason string
	}{
		{"Orem pela família da irmã Joana", true, ""},
		{"", true, ""},
		{"que merda de dia", false, "inappropriate_language"},
		{"Merdalândia fica longe", true, ""},
		{"veja https://exemplo.com", false, "url_not_allowed"},
		{"manda para joao@exemplo.com", false, "contact_info_not_allowed"},
		{"liga (11) 98765-4321", false, "contact_info_not_allowed"},
		{"amééém!!!!!!", false, "spam_detected"},
		{"GLORIA GLORIA GLORIA a Deus", false, "excessive_caps"},
		{"OBRIGADO Senhor", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ok, reason := ms.FilterContent(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestGetRejectionMessage(t *testing.T) {
	ms := services.NewModerationService(nil)
	assert.Equal(t, "Links não são permitidos no mural.", ms.GetRejectionMessage("url_not_allowed"))
	assert.Equal(t, "Sua publicação não segue as diretrizes do mural.", ms.GetRejectionMessage("unknown"))
}

func TestReports(t *testing.T) {
	db := testutil.NewTestDB(t)
	ms := services.NewModerationService(db)
	reporter := uuid.New()

	_, err := ms.CreateReport(reporter, &dto.CreateReportRequest{ContentType: "video", ContentID: uuid.New(), Reason: "x"})
	assert.ErrorIs(t, err, services.ErrInvalidContentType)
	_, err = ms.CreateReport(reporter, &dto.CreateReportRequest{ContentType: dto.ReportContentComment, Reason: "x"})
	assert.ErrorIs(t, err, services.ErrMissingContentID)
	_, err = ms.CreateReport(reporter, &dto.CreateReportRequest{ContentType: dto.ReportContentPost, ContentID: uuid.New(), Reason: " "})
	assert.ErrorIs(t, err, services.ErrReasonRequired)

	report, err := ms.CreateReport(reporter, &dto.CreateReportRequest{
		ContentType: dto.ReportContentPost, ContentID: uuid.New(), Reason: " ofensivo ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ofensivo", report.Reason)
	assert.Equal(t, "pending", report.Status)

	pending, total, err := ms.ListReports("pending", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, pending, 1)

	assert.ErrorIs(t, ms.ActionReport(report.ID, &dto.ActionReportRequest{Status: "ignored"}), services.ErrInvalidReportStatus)
	assert.ErrorIs(t, ms.ActionReport(report.ID, &dto.ActionReportRequest{Status: dto.ReportStatusPending}), services.ErrInvalidReportStatus)
	require.NoError(t, ms.ActionReport(report.ID, &dto.ActionReportRequest{Status: "dismissed", AdminNote: "ok"}))
	assert.ErrorIs(t, ms.ActionReport(uuid.New(), &dto.ActionReportRequest{Status: "reviewed"}), services.ErrReportNotFound)

	_, total, err = ms.ListReports("pending", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestBlocks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ms := services.NewModerationService(db)
	me, other := uuid.New(), uuid.New()

	assert.ErrorIs(t, ms.BlockUser(me, me), services.ErrSelfBlock)
	require.NoError(t, ms.BlockUser(me, other))
	assert.ErrorIs(t, ms.BlockUser(me, other), services.ErrAlreadyBlocked)

	ids, err := ms.GetBlockedIDs(me)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{other}, ids)

	require.NoError(t, ms.UnblockUser(me, other))
	ids, err = ms.GetBlockedIDs(me)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
