package domain

import "time"

type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
)

const (
	PredictionFake = "FAKE"
	PredictionReal = "REAL"
)

// Analysis is one uploaded video moving through the classification pipeline.
type Analysis struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	FileName          string         `json:"file_name"`
	StoragePath       string         `json:"-"`
	Status            AnalysisStatus `json:"status"`
	Prediction        string         `json:"prediction,omitempty"`
	Confidence        float64        `json:"confidence"`
	FakeProbability   float64        `json:"fake_probability"`
	RealProbability   float64        `json:"real_probability"`
	FramesAnalyzed    int            `json:"frames_analyzed"`
	ProcessingSeconds float64        `json:"processing_time"`
	Error             string         `json:"error,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Verdict is the classifier output averaged over sampled frames.
type Verdict struct {
	Prediction      string  `json:"prediction"`
	Confidence      float64 `json:"confidence"`
	FakeProbability float64 `json:"fake_probability"`
	RealProbability float64 `json:"real_probability"`
	FramesAnalyzed  int     `json:"frames_analyzed"`
}

// AnalysisSummary backs the dashboard counters.
type AnalysisSummary struct {
	TotalAnalyses     int     `json:"totalAnalyses"`
	DeepfakesDetected int     `json:"deepfakesDetected"`
	AccuracyRate      float64 `json:"accuracyRate"`
	AvgProcessingTime float64 `json:"avgProcessingTime"`
}
