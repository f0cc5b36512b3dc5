package dto

import "github.com/google/uuid"

// Mural content that members can report.
const (
	ReportContentPost    = "post"
	ReportContentComment = "comment"
)

// Report lifecycle. New reports start pending; admins move them to one of
// the other three.
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusActioned  = "actioned"
	ReportStatusDismissed = "dismissed"
)

// CreateReportRequest flags a mural post or comment by its ID.
type CreateReportRequest struct {
	ContentType string    `json:"content_type"`
	ContentID   uuid.UUID `json:"content_id"`
	Reason      string    `json:"reason"`
}

type ActionReportRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note"`
}

// BlockUserRequest hides another member's mural posts and comments from
// the caller.
type BlockUserRequest struct {
	BlockedID uuid.UUID `json:"blocked_id"`
}

// ReportListResponse is one page of the admin report queue.
type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

type ReportResponse struct {
	ID          uuid.UUID `json:"id"`
	ReporterID  uuid.UUID `json:"reporter_id"`
	ContentType string    `json:"content_type"`
	ContentID   string    `json:"content_id"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	AdminNote   string    `json:"admin_note,omitempty"`
	CreatedAt   string    `json:"created_at"`
}
