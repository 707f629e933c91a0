package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

type ContentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, content, image_url, author, published_on, created_at
FROM blogs
ORDER BY created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var out []domain.Blog
	for rows.Next() {
		var blog domain.Blog
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.ImageURL,
			&blog.Author, &blog.PublishedOn, &blog.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		out = append(out, blog)
	}
	return out, rows.Err()
}

func (r *ContentRepository) GetBlog(ctx context.Context, id string) (*domain.Blog, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, content, image_url, author, published_on, created_at FROM blogs WHERE id = $1
`, id)

	var blog domain.Blog
	err := row.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.ImageURL,
		&blog.Author, &blog.PublishedOn, &blog.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch blog", err)
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}
	return &blog, nil
}

func (r *ContentRepository) ListActiveTips(ctx context.Context) ([]domain.DailyTip, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, text, category FROM daily_tips WHERE is_active ORDER BY id
`)
	if err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyTip
	for rows.Next() {
		var tip domain.DailyTip
		if err := rows.Scan(&tip.ID, &tip.Text, &tip.Category); err != nil {
			return nil, fmt.Errorf("scan tip: %w", err)
		}
		out = append(out, tip)
	}
	return out, rows.Err()
}
