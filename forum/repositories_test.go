package forum_test

import (
	"context"
	"testing"

	"github.com/devforum/go-forum-cache/cache"
	"github.com/devforum/go-forum-cache/forum"
	"github.com/devforum/go-forum-cache/pkg/testsupport"
	"github.com/devforum/go-forum-cache/repositorycache"
)

func newMemoryStore(t *testing.T) cache.Store {
	t.Helper()

	store, err := cache.NewStore(cache.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUsersRepositoryEmailIndex(t *testing.T) {
	ctx := context.Background()
	base := testsupport.NewMemoryRepository[*forum.User]()
	repo := forum.NewCachedUsersRepository(base, newMemoryStore(t))

	created, err := repo.Create(ctx, &forum.User{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: "hash",
		Role:         forum.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	base.ResetCalls()

	byEmail, ok, err := repo.FindBy(ctx, "email", "jane@example.com")
	if err != nil || !ok {
		t.Fatalf("FindBy = (%v, %v), want hit", ok, err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("FindBy returned %q, want %q", byEmail.ID, created.ID)
	}
	if got := base.CallCount("FindBy"); got != 0 {
		t.Errorf("email lookup hit persistence %d times, want 0", got)
	}
}

func TestQuestionsRepositorySlugIndex(t *testing.T) {
	ctx := context.Background()
	base := testsupport.NewMemoryRepository[*forum.Question]()
	repo := forum.NewCachedQuestionsRepository(base, newMemoryStore(t))

	created, err := repo.Create(ctx, &forum.Question{
		AuthorID: "author-1",
		Title:    "How do repositories cache?",
		Slug:     "how-do-repositories-cache",
		Content:  "...",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	base.ResetCalls()

	bySlug, ok, err := repo.FindBy(ctx, "slug", "how-do-repositories-cache")
	if err != nil || !ok {
		t.Fatalf("FindBy = (%v, %v), want hit", ok, err)
	}
	if bySlug.ID != created.ID {
		t.Errorf("FindBy returned %q, want %q", bySlug.ID, created.ID)
	}
	if got := base.CallCount("FindBy"); got != 0 {
		t.Errorf("slug lookup hit persistence %d times, want 0", got)
	}
}

func TestAnswersPerQuestionPages(t *testing.T) {
	ctx := context.Background()
	base := testsupport.NewMemoryRepositoryWithClock[*forum.Answer](testsupport.NewDefaultClock().Now)
	repo := forum.NewCachedAnswersRepository(base, newMemoryStore(t))

	for i := 0; i < 5; i++ {
		if _, err := repo.Create(ctx, &forum.Answer{
			AuthorID:   "author-1",
			QuestionID: "question-1",
			Content:    "...",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := repo.Create(ctx, &forum.Answer{
		AuthorID:   "author-2",
		QuestionID: "question-2",
		Content:    "...",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	params := repositorycache.NewListParams(map[string]string{"questionId": "question-1"})
	page, err := repo.FindMany(ctx, params)
	if err != nil {
		t.Fatalf("FindMany failed: %v", err)
	}
	if page.TotalItems != 5 {
		t.Fatalf("TotalItems = %d, want 5", page.TotalItems)
	}
	for _, answer := range page.Items {
		if answer.QuestionID != "question-1" {
			t.Errorf("page leaked answer for question %q", answer.QuestionID)
		}
	}

	base.ResetCalls()

	cached, err := repo.FindMany(ctx, params)
	if err != nil {
		t.Fatalf("FindMany failed: %v", err)
	}
	if got := base.CallCount("FindMany"); got != 0 {
		t.Errorf("repeat page hit persistence %d times, want 0", got)
	}
	if cached.TotalItems != page.TotalItems {
		t.Errorf("cached TotalItems = %d, want %d", cached.TotalItems, page.TotalItems)
	}
}

func TestEntityNamespacesDoNotCollide(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	users := forum.NewCachedUsersRepository(testsupport.NewMemoryRepository[*forum.User](), store)
	tokens := forum.NewCachedRefreshTokensRepository(testsupport.NewMemoryRepository[*forum.RefreshToken](), store)

	user, err := users.Create(ctx, &forum.User{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: "hash",
		Role:         forum.RoleInstructor,
	})
	if err != nil {
		t.Fatalf("Create user failed: %v", err)
	}

	if _, ok, err := tokens.FindByID(ctx, user.ID); err != nil {
		t.Fatalf("FindByID failed: %v", err)
	} else if ok {
		t.Error("token lookup found a record cached under the users namespace")
	}
}
