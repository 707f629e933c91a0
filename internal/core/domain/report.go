package domain

import "time"

type Report struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	AnalysisID     string    `json:"analysis_id,omitempty"`
	FileName       string    `json:"file_name"`
	Prediction     string    `json:"prediction"`
	Confidence     float64   `json:"confidence"`
	FramesAnalyzed int       `json:"frames_analyzed"`
	ModelVersion   string    `json:"model_version"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReportWithUser joins report rows with the owning account for admin listings.
type ReportWithUser struct {
	Report
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

// ReportFilter narrows admin report listings. Zero values mean "no filter".
type ReportFilter struct {
	Result   string
	UserID   string
	DateFrom string
	DateTo   string
}

type ReportStatistics struct {
	TotalReports   int       `json:"total_reports"`
	FakeReports    int       `json:"fake_reports"`
	RealReports    int       `json:"real_reports"`
	FakePercentage float64   `json:"fake_percentage"`
	AvgConfidence  float64   `json:"avg_confidence"`
	MostRecent     time.Time `json:"most_recent"`
}
