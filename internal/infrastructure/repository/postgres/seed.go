package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedData struct {
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
		Name     string `yaml:"name"`
	} `yaml:"users"`
	Blogs []struct {
		Title    string `yaml:"title"`
		Content  string `yaml:"content"`
		ImageURL string `yaml:"image_url"`
		Author   string `yaml:"author"`
		Date     string `yaml:"date"`
	} `yaml:"blogs"`
	Tips []struct {
		Text     string `yaml:"text"`
		Category string `yaml:"category"`
	} `yaml:"tips"`
	Posts []struct {
		Topic    string `yaml:"topic"`
		Author   string `yaml:"author"`
		Likes    int    `yaml:"likes"`
		Content  string `yaml:"content"`
		Comments []struct {
			Author  string `yaml:"author"`
			Content string `yaml:"content"`
		} `yaml:"comments"`
	} `yaml:"posts"`
}

// Seed inserts the bundled starter content. Each table is only populated
// when it is empty, so reruns and multi-instance startups are safe.
func Seed(ctx context.Context, db *sql.DB, hash func(string) (string, error), logger *slog.Logger) error {
	var data seedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	now := time.Now().UTC()

	adminID, err := seedUsers(ctx, db, data, hash, now, logger)
	if err != nil {
		return err
	}
	if err := seedBlogs(ctx, db, data, now, logger); err != nil {
		return err
	}
	if err := seedTips(ctx, db, data, logger); err != nil {
		return err
	}
	if err := seedForum(ctx, db, data, adminID, now, logger); err != nil {
		return err
	}
	return nil
}

func seedUsers(ctx context.Context, db *sql.DB, data seedData, hash func(string) (string, error), now time.Time, logger *slog.Logger) (string, error) {
	var adminID string
	for _, user := range data.Users {
		var existingID string
		err := db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, user.Email).Scan(&existingID)
		if err == nil {
			if user.Role == "admin" {
				adminID = existingID
			}
			continue
		}
		if err != sql.ErrNoRows {
			return "", fmt.Errorf("check seed user: %w", err)
		}

		passwordHash, err := hash(user.Password)
		if err != nil {
			return "", fmt.Errorf("hash seed password: %w", err)
		}
		id := uuid.NewString()
		if _, err := db.ExecContext(ctx, `
INSERT INTO users (id, email, password_hash, role, name, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, id, user.Email, passwordHash, user.Role, user.Name, now); err != nil {
			return "", fmt.Errorf("insert seed user: %w", err)
		}
		if user.Role == "admin" {
			adminID = id
		}
		logger.Info("seed_user_created", "email", user.Email, "role", user.Role)
	}
	return adminID, nil
}

func seedBlogs(ctx context.Context, db *sql.DB, data seedData, now time.Time, logger *slog.Logger) error {
	empty, err := tableEmpty(ctx, db, "blogs")
	if err != nil || !empty {
		return err
	}
	for i, blog := range data.Blogs {
		if _, err := db.ExecContext(ctx, `
INSERT INTO blogs (id, title, content, image_url, author, published_on, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, uuid.NewString(), blog.Title, blog.Content, blog.ImageURL, blog.Author, blog.Date,
			now.Add(-time.Duration(i)*time.Hour)); err != nil {
			return fmt.Errorf("insert seed blog: %w", err)
		}
	}
	logger.Info("seed_blogs_created", "count", len(data.Blogs))
	return nil
}

func seedTips(ctx context.Context, db *sql.DB, data seedData, logger *slog.Logger) error {
	empty, err := tableEmpty(ctx, db, "daily_tips")
	if err != nil || !empty {
		return err
	}
	for _, tip := range data.Tips {
		if _, err := db.ExecContext(ctx, `
INSERT INTO daily_tips (id, text, category, is_active) VALUES ($1,$2,$3,TRUE)
`, uuid.NewString(), tip.Text, tip.Category); err != nil {
			return fmt.Errorf("insert seed tip: %w", err)
		}
	}
	logger.Info("seed_tips_created", "count", len(data.Tips))
	return nil
}

func seedForum(ctx context.Context, db *sql.DB, data seedData, adminID string, now time.Time, logger *slog.Logger) error {
	empty, err := tableEmpty(ctx, db, "forum_posts")
	if err != nil || !empty {
		return err
	}
	if adminID == "" {
		logger.Warn("seed_forum_skipped", "reason", "no admin account")
		return nil
	}

	postTime := now
	commentCount := 0
	for _, post := range data.Posts {
		postID := uuid.NewString()
		if _, err := db.ExecContext(ctx, `
INSERT INTO forum_posts (id, user_id, username, topic, content, likes, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, postID, adminID, post.Author, post.Topic, post.Content, post.Likes, postTime); err != nil {
			return fmt.Errorf("insert seed post: %w", err)
		}

		commentTime := postTime
		for _, comment := range post.Comments {
			commentTime = commentTime.Add(10 * time.Minute)
			if _, err := db.ExecContext(ctx, `
INSERT INTO forum_comments (id, post_id, user_id, username, content, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, uuid.NewString(), postID, adminID, comment.Author, comment.Content, commentTime); err != nil {
				return fmt.Errorf("insert seed comment: %w", err)
			}
			commentCount++
		}
		postTime = postTime.Add(-time.Hour)
	}
	logger.Info("seed_forum_created", "posts", len(data.Posts), "comments", commentCount)
	return nil
}

func tableEmpty(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return count == 0, nil
}
