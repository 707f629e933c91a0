package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

type ForumRepository struct {
	db *sql.DB
}

func NewForumRepository(db *sql.DB) *ForumRepository {
	return &ForumRepository{db: db}
}

func (r *ForumRepository) ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.ForumPost, error) {
	query := `
SELECT p.id, p.user_id, p.username, p.topic, p.content, p.likes,
	(SELECT COUNT(*) FROM forum_comments c WHERE c.post_id = p.id),
	p.created_at
FROM forum_posts p`

	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Topic != "" {
		conditions = append(conditions, "p.topic = "+arg(filter.Topic))
	}
	if filter.Search != "" {
		placeholder := arg("%" + filter.Search + "%")
		conditions = append(conditions, "(p.content ILIKE "+placeholder+" OR p.username ILIKE "+placeholder+")")
	}
	if len(conditions) > 0 {
		query += "\nWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\nORDER BY p.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var out []domain.ForumPost
	for rows.Next() {
		var post domain.ForumPost
		if err := rows.Scan(&post.ID, &post.UserID, &post.Username, &post.Topic, &post.Content,
			&post.Likes, &post.CommentsCount, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, post)
	}
	return out, rows.Err()
}

func (r *ForumRepository) CreatePost(ctx context.Context, post *domain.ForumPost) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO forum_posts (id, user_id, username, topic, content, likes, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, post.ID, post.UserID, post.Username, post.Topic, post.Content, post.Likes, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *ForumRepository) GetPost(ctx context.Context, id string) (*domain.ForumPost, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT p.id, p.user_id, p.username, p.topic, p.content, p.likes,
	(SELECT COUNT(*) FROM forum_comments c WHERE c.post_id = p.id),
	p.created_at
FROM forum_posts p
WHERE p.id = $1
`, id)

	var post domain.ForumPost
	err := row.Scan(&post.ID, &post.UserID, &post.Username, &post.Topic, &post.Content,
		&post.Likes, &post.CommentsCount, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch post", err)
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &post, nil
}

func (r *ForumRepository) LikePost(ctx context.Context, id string) (int, error) {
	var likes int
	err := r.db.QueryRowContext(ctx, `
UPDATE forum_posts SET likes = likes + 1 WHERE id = $1 RETURNING likes
`, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.WrapError(domain.ErrNotFound, "like post", err)
		}
		return 0, fmt.Errorf("like post: %w", err)
	}
	return likes, nil
}

func (r *ForumRepository) DeletePost(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM forum_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if countDeleted(result) == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete post", sql.ErrNoRows)
	}
	return nil
}

func (r *ForumRepository) ListComments(ctx context.Context, postID string) ([]domain.ForumComment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, post_id, user_id, username, content, created_at
FROM forum_comments
WHERE post_id = $1
ORDER BY created_at
`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var out []domain.ForumComment
	for rows.Next() {
		var comment domain.ForumComment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Username,
			&comment.Content, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, comment)
	}
	return out, rows.Err()
}

func (r *ForumRepository) CreateComment(ctx context.Context, comment *domain.ForumComment) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO forum_comments (id, post_id, user_id, username, content, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, comment.ID, comment.PostID, comment.UserID, comment.Username, comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *ForumRepository) GetComment(ctx context.Context, id string) (*domain.ForumComment, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, post_id, user_id, username, content, created_at FROM forum_comments WHERE id = $1
`, id)

	var comment domain.ForumComment
	err := row.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.Username,
		&comment.Content, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrNotFound, "fetch comment", err)
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return &comment, nil
}

func (r *ForumRepository) DeleteComment(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM forum_comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if countDeleted(result) == 0 {
		return domain.WrapError(domain.ErrNotFound, "delete comment", sql.ErrNoRows)
	}
	return nil
}
