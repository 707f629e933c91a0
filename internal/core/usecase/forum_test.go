package usecase

import (
	"context"
	"testing"

	"github.com/apurvakhangal/unmasked/internal/core/domain"
)

func TestCreatePostDefaultsTopic(t *testing.T) {
	forum := newForumRepoFake()
	uc := NewForumUseCase(forum, &adminLogRepoFake{})

	caller := domain.Principal{UserID: "u1", Email: "apurva@example.com"}
	post, err := uc.CreatePost(context.Background(), caller, "  ", "Is this clip doctored?")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if post.Topic != "General" {
		t.Fatalf("expected General topic, got %q", post.Topic)
	}
	if post.Username != "apurva" {
		t.Fatalf("expected mailbox fallback username, got %q", post.Username)
	}

	if _, err := uc.CreatePost(context.Background(), caller, "Detection", "   "); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank content, got %v", err)
	}
}

func TestDeletePostAuthorization(t *testing.T) {
	forum := newForumRepoFake()
	audit := &adminLogRepoFake{}
	uc := NewForumUseCase(forum, audit)

	author := domain.Principal{UserID: "u1", Name: "Priya"}
	post, err := uc.CreatePost(context.Background(), author, "Detection", "watch the eyes")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	stranger := domain.Principal{UserID: "u2"}
	if err := uc.DeletePost(context.Background(), stranger, post.ID); !domain.IsKind(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}

	admin := domain.Principal{UserID: "root", Email: "admin@gmail.com", Role: domain.RoleAdmin}
	if err := uc.DeletePost(context.Background(), admin, post.ID); err != nil {
		t.Fatalf("admin delete error = %v", err)
	}
	if len(audit.logs) != 1 || audit.logs[0].Action != domain.AdminActionDeletePost {
		t.Fatalf("expected moderation audit entry, got %+v", audit.logs)
	}
}

func TestCommentsRequireExistingPost(t *testing.T) {
	forum := newForumRepoFake()
	uc := NewForumUseCase(forum, &adminLogRepoFake{})

	caller := domain.Principal{UserID: "u1", Name: "Rahul"}
	if _, err := uc.CreateComment(context.Background(), caller, "missing", "agreed"); !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	post, err := uc.CreatePost(context.Background(), caller, "Detection", "blink rate looks off")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	comment, err := uc.CreateComment(context.Background(), caller, post.ID, "agreed")
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	comments, err := uc.ListComments(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(comments) != 1 || comments[0].ID != comment.ID {
		t.Fatalf("expected one comment, got %+v", comments)
	}
}

func TestLikePostIncrements(t *testing.T) {
	forum := newForumRepoFake()
	uc := NewForumUseCase(forum, &adminLogRepoFake{})

	post, err := uc.CreatePost(context.Background(), domain.Principal{UserID: "u1"}, "General", "hello")
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	for want := 1; want <= 3; want++ {
		likes, err := uc.LikePost(context.Background(), post.ID)
		if err != nil {
			t.Fatalf("LikePost() error = %v", err)
		}
		if likes != want {
			t.Fatalf("expected %d likes, got %d", want, likes)
		}
	}
}
