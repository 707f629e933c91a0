package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
	"github.com/apurvakhangal/unmasked/internal/core/ports"
)

type ForumUseCase struct {
	forum     ports.ForumRepository
	adminLogs ports.AdminLogRepository
}

func NewForumUseCase(forum ports.ForumRepository, adminLogs ports.AdminLogRepository) *ForumUseCase {
	return &ForumUseCase{forum: forum, adminLogs: adminLogs}
}

func (uc *ForumUseCase) ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.ForumPost, error) {
	posts, err := uc.forum.ListPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (uc *ForumUseCase) CreatePost(ctx context.Context, caller domain.Principal, topic, content string) (*domain.ForumPost, error) {
	topic = strings.TrimSpace(topic)
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create post", errors.New("content is required"))
	}
	if topic == "" {
		topic = "General"
	}

	post := &domain.ForumPost{
		ID:        uuid.NewString(),
		UserID:    caller.UserID,
		Username:  callerDisplayName(caller),
		Topic:     topic,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.forum.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func (uc *ForumUseCase) LikePost(ctx context.Context, id string) (int, error) {
	likes, err := uc.forum.LikePost(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("like post: %w", err)
	}
	return likes, nil
}

// DeletePost allows the author or an admin; admin deletions are audited.
func (uc *ForumUseCase) DeletePost(ctx context.Context, caller domain.Principal, id string) error {
	post, err := uc.forum.GetPost(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch post: %w", err)
	}
	if post.UserID != caller.UserID && !caller.IsAdmin() {
		return domain.WrapError(domain.ErrForbidden, "delete post", errors.New("not the author"))
	}
	if err := uc.forum.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if caller.IsAdmin() && post.UserID != caller.UserID {
		uc.audit(ctx, caller, domain.AdminActionDeletePost, fmt.Sprintf("post %s by %s", id, post.Username))
	}
	return nil
}

func (uc *ForumUseCase) ListComments(ctx context.Context, postID string) ([]domain.ForumComment, error) {
	if _, err := uc.forum.GetPost(ctx, postID); err != nil {
		return nil, fmt.Errorf("fetch post: %w", err)
	}
	comments, err := uc.forum.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (uc *ForumUseCase) CreateComment(ctx context.Context, caller domain.Principal, postID, content string) (*domain.ForumComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create comment", errors.New("content is required"))
	}
	if _, err := uc.forum.GetPost(ctx, postID); err != nil {
		return nil, fmt.Errorf("fetch post: %w", err)
	}

	comment := &domain.ForumComment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    caller.UserID,
		Username:  callerDisplayName(caller),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.forum.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (uc *ForumUseCase) DeleteComment(ctx context.Context, caller domain.Principal, id string) error {
	comment, err := uc.forum.GetComment(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch comment: %w", err)
	}
	if comment.UserID != caller.UserID && !caller.IsAdmin() {
		return domain.WrapError(domain.ErrForbidden, "delete comment", errors.New("not the author"))
	}
	if err := uc.forum.DeleteComment(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if caller.IsAdmin() && comment.UserID != caller.UserID {
		uc.audit(ctx, caller, domain.AdminActionDeleteComment, fmt.Sprintf("comment %s by %s", id, comment.Username))
	}
	return nil
}

// audit is best-effort, moderation must not fail on a log write.
func (uc *ForumUseCase) audit(ctx context.Context, caller domain.Principal, action, details string) {
	_ = uc.adminLogs.Create(ctx, &domain.AdminLog{
		ID:         uuid.NewString(),
		AdminID:    caller.UserID,
		AdminEmail: caller.Email,
		Action:     action,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	})
}

func callerDisplayName(caller domain.Principal) string {
	if strings.TrimSpace(caller.Name) != "" {
		return caller.Name
	}
	if at := strings.Index(caller.Email, "@"); at > 0 {
		return caller.Email[:at]
	}
	return caller.Email
}
