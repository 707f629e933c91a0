package evidence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

const maxExcerptRunes = 2000

// Extractor pulls a plain-text excerpt out of a stored PDF evidence file so
// support staff can triage complaints without opening attachments.
type Extractor struct {
	basePath string
}

func New(basePath string) *Extractor {
	if basePath == "" {
		basePath = "./data/uploads"
	}
	return &Extractor{basePath: basePath}
}

func (e *Extractor) Excerpt(_ context.Context, key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || filepath.Base(key) != key {
		return "", domain.WrapError(domain.ErrInvalidInput, "resolve evidence key",
			fmt.Errorf("invalid key %q", key))
	}

	f, reader, err := pdf.Open(filepath.Join(e.basePath, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.WrapError(domain.ErrNotFound, "open evidence", err)
		}
		return "", fmt.Errorf("open evidence pdf: %w", err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract evidence text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, textReader); err != nil {
		return "", fmt.Errorf("read evidence text: %w", err)
	}

	return truncate(collapseWhitespace(sb.String()), maxExcerptRunes), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
