package domain

import "time"

type ReportStatus string

const (
	ReportOpen      ReportStatus = "OPEN"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

type Report struct {
	ID           int          `json:"id" db:"id"`
	ReporterID   int          `json:"reporter_id" db:"reporter_id"`
	TargetUserID int          `json:"target_user_id" db:"target_user_id"`
	Reason       string       `json:"reason" db:"reason"`
	Status       ReportStatus `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	ResolvedAt   *time.Time   `json:"resolved_at" db:"resolved_at"`
}
