package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/dto"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrAlreadyBlocked = errors.New("user already blocked")
	ErrSelfBlock      = errors.New("cannot block yourself")

	ErrInvalidContentType  = errors.New("only mural posts and comments can be reported")
	ErrMissingContentID    = errors.New("content_id is required")
	ErrReasonRequired      = errors.New("reason is required")
	ErrInvalidReportStatus = errors.New("status must be reviewed, actioned or dismissed")
)

// reportableContent lists what the mural exposes to reports.
var reportableContent = map[string]bool{
	dto.ReportContentPost:    true,
	dto.ReportContentComment: true,
}

var reportStatuses = map[string]bool{
	dto.ReportStatusPending:   true,
	dto.ReportStatusReviewed:  true,
	dto.ReportStatusActioned:  true,
	dto.ReportStatusDismissed: true,
}

// ValidReportStatus reports whether status can filter the report queue.
func ValidReportStatus(status string) bool {
	return reportStatuses[status]
}

// BannedWords is matched case-insensitively on word boundaries.
var BannedWords = []string{
	"porra", "caralho", "merda", "puta", "viado", "otario", "otário",
	"fuck", "shit", "bitch", "asshole",
	"porn", "porno", "nude", "nudes",
	"spam", "scam", "phishing", "pix premiado",
}

var rejectionMessages = map[string]string{
	"inappropriate_language":   "Sua publicação contém linguagem inadequada.",
	"url_not_allowed":          "Links não são permitidos no mural.",
	"contact_info_not_allowed": "Dados de contato não são permitidos no mural.",
	"spam_detected":            "Sua publicação parece ser spam.",
	"excessive_caps":           "Evite usar letras maiúsculas em excesso.",
}

type ModerationService struct {
	db                  *gorm.DB
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	emailPattern        *regexp.Regexp
	phonePattern        *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
}

func NewModerationService(db *gorm.DB) *ModerationService {
	ms := &ModerationService{db: db}
	ms.compilePatterns()
	return ms
}

func (ms *ModerationService) compilePatterns() {
	ms.bannedWordRegexps = make([]*regexp.Regexp, 0, len(BannedWords))
	for _, word := range BannedWords {
		re, err := regexp.Compile(`(?i)(^|[^\p{L}])` + regexp.QuoteMeta(word) + `($|[^\p{L}])`)
		if err == nil {
			ms.bannedWordRegexps = append(ms.bannedWordRegexps, re)
		}
	}

	ms.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	ms.emailPattern = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)
	ms.phonePattern = regexp.MustCompile(`\(?\d{2}\)?\s*9?\d{4}[-.\s]?\d{4}`)
	ms.repeatedCharPattern = regexp.MustCompile(repeatedCharExpr())
	ms.allCapsPattern = regexp.MustCompile(`[A-ZÀ-Ý]{5,}`)
}

// repeatedCharExpr matches any letter or ! ? . repeated five or more times.
// RE2 has no backreferences, so every character gets its own alternative.
func repeatedCharExpr() string {
	parts := make([]string, 0, 29)
	for c := 'a'; c <= 'z'; c++ {
		parts = append(parts, string(c)+"{5,}")
	}
	parts = append(parts, `!{5,}`, `\?{5,}`, `\.{5,}`)
	return "(?i)(" + strings.Join(parts, "|") + ")"
}

// FilterContent screens feed text. It returns false and a reason key when
// the text must be rejected.
func (ms *ModerationService) FilterContent(text string) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return true, ""
	}
	for _, re := range ms.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if ms.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if ms.emailPattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if ms.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	if ms.repeatedCharPattern.MatchString(text) {
		return false, "spam_detected"
	}
	if len(ms.allCapsPattern.FindAllString(text, -1)) > 2 {
		return false, "excessive_caps"
	}
	return true, ""
}

func (ms *ModerationService) GetRejectionMessage(reason string) string {
	if msg, ok := rejectionMessages[reason]; ok {
		return msg
	}
	return "Sua publicação não segue as diretrizes do mural."
}

func (ms *ModerationService) CreateReport(reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if !reportableContent[req.ContentType] {
		return nil, ErrInvalidContentType
	}
	if req.ContentID == uuid.Nil {
		return nil, ErrMissingContentID
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}

	report := models.Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		ContentType: req.ContentType,
		ContentID:   req.ContentID.String(),
		Reason:      strings.TrimSpace(req.Reason),
		Status:      dto.ReportStatusPending,
	}

	if err := ms.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (ms *ModerationService) ListReports(status string, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := ms.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (ms *ModerationService) ActionReport(reportID uuid.UUID, req *dto.ActionReportRequest) error {
	if req.Status == dto.ReportStatusPending || !reportStatuses[req.Status] {
		return ErrInvalidReportStatus
	}

	result := ms.db.Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":     req.Status,
			"admin_note": req.AdminNote,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (ms *ModerationService) BlockUser(blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrSelfBlock
	}

	var count int64
	ms.db.Model(&models.Block{}).Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Count(&count)
	if count > 0 {
		return ErrAlreadyBlocked
	}

	return ms.db.Create(&models.Block{BlockerID: blockerID, BlockedID: blockedID}).Error
}

func (ms *ModerationService) UnblockUser(blockerID, blockedID uuid.UUID) error {
	return ms.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
}

func (ms *ModerationService) GetBlockedIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := ms.db.Model(&models.Block{}).Where("blocker_id = ?", userID).Pluck("blocked_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
