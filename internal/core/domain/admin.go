package domain

import "time"

// Admin console action names recorded in the audit trail.
const (
	AdminActionResetAllData  = "RESET_ALL_DATA"
	AdminActionResetUserData = "RESET_USER_DATA"
	AdminActionDeleteUser    = "DELETE_USER"
	AdminActionDeleteReport  = "DELETE_REPORT"
	AdminActionDeletePost    = "DELETE_FORUM_POST"
	AdminActionDeleteComment = "DELETE_FORUM_COMMENT"
	AdminActionExportReports = "EXPORT_REPORTS"
)

type AdminLog struct {
	ID         string    `json:"id"`
	AdminID    string    `json:"admin_id"`
	AdminEmail string    `json:"admin_email"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"timestamp"`
}

// ResetCounts reports how many rows a reset removed per table.
type ResetCounts struct {
	Analyses      int `json:"analyses"`
	Reports       int `json:"reports"`
	History       int `json:"history"`
	Notifications int `json:"notifications"`
}

// Dashboard aggregates the landing-page numbers for one user, or for the
// whole fleet when requested by an admin.
type Dashboard struct {
	AnalysisSummary
	RecentAnalyses []Analysis     `json:"recentAnalyses"`
	Notifications  []Notification `json:"notifications"`
}
