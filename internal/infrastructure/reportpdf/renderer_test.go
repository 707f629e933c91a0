package reportpdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func TestRenderProducesPDF(t *testing.T) {
	renderer := New("Unmasked")
	report := &domain.Report{
		ID:             "r1",
		FileName:       "clip.mp4",
		Prediction:     domain.PredictionFake,
		Confidence:     93.4,
		FramesAnalyzed: 42,
		ModelVersion:   "xception-50e",
		CreatedAt:      time.Now().UTC(),
	}

	pdf, err := renderer.Render(report, "Apurva")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes, got %q", pdf[:8])
	}
	if len(pdf) < 500 {
		t.Fatalf("suspiciously small pdf: %d bytes", len(pdf))
	}
}

func TestRenderHandlesRealVerdict(t *testing.T) {
	renderer := New("")
	report := &domain.Report{
		ID:         "r2",
		FileName:   "statement.mov",
		Prediction: domain.PredictionReal,
		Confidence: 81.0,
		CreatedAt:  time.Now().UTC(),
	}

	pdf, err := renderer.Render(report, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected PDF output")
	}
}
