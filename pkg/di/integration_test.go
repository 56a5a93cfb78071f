package di_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/devforum/go-forum-cache/cache"
	"github.com/devforum/go-forum-cache/forum"
	"github.com/devforum/go-forum-cache/pkg/di"
	"github.com/devforum/go-forum-cache/pkg/testsupport"
	"github.com/devforum/go-forum-cache/repositorycache"
)

func newContainer(t *testing.T) *di.Container {
	t.Helper()

	container, err := di.NewContainerWithDefaults(context.Background())
	if err != nil {
		t.Fatalf("NewContainerWithDefaults failed: %v", err)
	}
	t.Cleanup(func() { container.Close() })
	return container
}

func TestFullStackQuestionLifecycle(t *testing.T) {
	ctx := context.Background()
	container := newContainer(t)

	base := testsupport.NewMemoryRepository[*forum.Question]()
	questions := forum.NewCachedQuestionsRepository(base, container.Store())

	created, err := questions.Create(ctx, &forum.Question{
		AuthorID: "author-1",
		Title:    "What invalidates a cached page?",
		Slug:     "what-invalidates-a-cached-page",
		Content:  "...",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	base.ResetCalls()

	// Reads after a create are served from the cache.
	if _, ok, err := questions.FindByID(ctx, created.ID); err != nil || !ok {
		t.Fatalf("FindByID = (%v, %v), want hit", ok, err)
	}
	if _, ok, err := questions.FindBy(ctx, "slug", created.Slug); err != nil || !ok {
		t.Fatalf("FindBy = (%v, %v), want hit", ok, err)
	}
	if got := len(base.Calls()); got != 0 {
		t.Fatalf("cached reads hit persistence %d times: %v", got, base.Calls())
	}

	created.Title = "What invalidates a cached page, exactly?"
	updated, err := questions.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	base.ResetCalls()

	got, ok, err := questions.FindByID(ctx, updated.ID)
	if err != nil || !ok {
		t.Fatalf("FindByID = (%v, %v), want hit", ok, err)
	}
	if got.Title != updated.Title {
		t.Errorf("cached title %q, want %q", got.Title, updated.Title)
	}
	if base.CallCount("FindByID") != 0 {
		t.Error("read after update hit persistence")
	}

	if err := questions.Delete(ctx, updated.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := questions.FindByID(ctx, updated.ID); ok {
		t.Error("deleted question still resolvable")
	}

	// Deleting an already absent record is not an error.
	if err := questions.Delete(ctx, updated.ID); err != nil {
		t.Errorf("repeat Delete failed: %v", err)
	}
}

func TestFullStackPagination(t *testing.T) {
	ctx := context.Background()
	container := newContainer(t)

	base := testsupport.NewMemoryRepositoryWithClock[*forum.Answer](testsupport.NewDefaultClock().Now)
	answers := forum.NewCachedAnswersRepository(base, container.Store())

	for i := 0; i < 22; i++ {
		if _, err := answers.Create(ctx, &forum.Answer{
			AuthorID:   fmt.Sprintf("author-%d", i%3),
			QuestionID: "question-1",
			Content:    fmt.Sprintf("answer %d", i),
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	params := repositorycache.NewListParams(nil)
	first, err := answers.FindMany(ctx, params)
	if err != nil {
		t.Fatalf("FindMany failed: %v", err)
	}
	if first.TotalItems != 22 || first.TotalPages != 2 {
		t.Fatalf("totals = (%d items, %d pages), want (22, 2)", first.TotalItems, first.TotalPages)
	}
	if len(first.Items) != 20 {
		t.Fatalf("page 1 holds %d items, want 20", len(first.Items))
	}

	params.Page = 2
	second, err := answers.FindMany(ctx, params)
	if err != nil {
		t.Fatalf("FindMany failed: %v", err)
	}
	if len(second.Items) != 2 {
		t.Fatalf("page 2 holds %d items, want 2", len(second.Items))
	}

	// A new answer must push both cached pages out.
	if _, err := answers.Create(ctx, &forum.Answer{
		AuthorID:   "author-9",
		QuestionID: "question-1",
		Content:    "answer 22",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	base.ResetCalls()

	params.Page = 1
	refreshed, err := answers.FindMany(ctx, params)
	if err != nil {
		t.Fatalf("FindMany failed: %v", err)
	}
	if refreshed.TotalItems != 23 {
		t.Errorf("TotalItems = %d, want 23", refreshed.TotalItems)
	}
	if base.CallCount("FindMany") != 1 {
		t.Errorf("FindMany hit persistence %d times, want 1", base.CallCount("FindMany"))
	}
}

func TestFullStackCorruptionHeals(t *testing.T) {
	ctx := context.Background()
	container := newContainer(t)

	base := testsupport.NewMemoryRepository[*forum.User]()
	users := forum.NewCachedUsersRepository(base, container.Store())

	created, err := users.Create(ctx, &forum.User{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: "hash",
		Role:         forum.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Scribble over the cached entry behind the repository's back.
	keys := cache.NewKeyBuilder(forum.UsersPrefix)
	if err := container.Store().Set(ctx, keys.Primary(created.ID), "{not json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := users.FindByID(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("FindByID = (%v, %v), want healed hit", ok, err)
	}
	if got.Email != created.Email {
		t.Errorf("healed record email %q, want %q", got.Email, created.Email)
	}
	if base.CallCount("FindByID") != 1 {
		t.Errorf("heal hit persistence %d times, want 1", base.CallCount("FindByID"))
	}

	// The repaired entry is decodable again without touching persistence.
	base.ResetCalls()
	if _, ok, err := users.FindByID(ctx, created.ID); err != nil || !ok {
		t.Fatalf("FindByID = (%v, %v), want hit", ok, err)
	}
	if got := base.CallCount("FindByID"); got != 0 {
		t.Errorf("repaired read hit persistence %d times, want 0", got)
	}
}
