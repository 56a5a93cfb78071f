package forum

import (
	"github.com/uptrace/bun"

	"github.com/devforum/go-forum-cache/bunrepo"
	"github.com/devforum/go-forum-cache/cache"
	"github.com/devforum/go-forum-cache/repositorycache"
)

// Cache namespace prefixes, one per entity type.
const (
	UsersPrefix            = "users"
	QuestionsPrefix        = "questions"
	AnswersPrefix          = "answers"
	QuestionCommentsPrefix = "question-comments"
	AnswerCommentsPrefix   = "answer-comments"
	AttachmentsPrefix      = "attachments"
	RefreshTokensPrefix    = "refresh-tokens"
	EmailValidationsPrefix = "email-validations"
)

// NewCachedUsersRepository wraps a users repository with caching. Users are
// additionally indexed by email.
func NewCachedUsersRepository(base repositorycache.Repository[*User], store cache.Store) *repositorycache.CachedRepository[*User] {
	return repositorycache.New(base, store, UsersPrefix, repositorycache.Index[*User]{
		Field: "email",
		Value: func(u *User) string { return u.Email },
	})
}

// NewCachedQuestionsRepository wraps a questions repository with caching.
// Questions are additionally indexed by slug.
func NewCachedQuestionsRepository(base repositorycache.Repository[*Question], store cache.Store) *repositorycache.CachedRepository[*Question] {
	return repositorycache.New(base, store, QuestionsPrefix, repositorycache.Index[*Question]{
		Field: "slug",
		Value: func(q *Question) string { return q.Slug },
	})
}

// NewCachedAnswersRepository wraps an answers repository with caching.
// Answers are only looked up by id or through filtered pages, so no
// secondary index exists.
func NewCachedAnswersRepository(base repositorycache.Repository[*Answer], store cache.Store) *repositorycache.CachedRepository[*Answer] {
	return repositorycache.New(base, store, AnswersPrefix)
}

// NewCachedQuestionCommentsRepository wraps a question comments repository
// with caching.
func NewCachedQuestionCommentsRepository(base repositorycache.Repository[*QuestionComment], store cache.Store) *repositorycache.CachedRepository[*QuestionComment] {
	return repositorycache.New(base, store, QuestionCommentsPrefix)
}

// NewCachedAnswerCommentsRepository wraps an answer comments repository with
// caching.
func NewCachedAnswerCommentsRepository(base repositorycache.Repository[*AnswerComment], store cache.Store) *repositorycache.CachedRepository[*AnswerComment] {
	return repositorycache.New(base, store, AnswerCommentsPrefix)
}

// NewCachedAttachmentsRepository wraps an attachments repository with
// caching.
func NewCachedAttachmentsRepository(base repositorycache.Repository[*Attachment], store cache.Store) *repositorycache.CachedRepository[*Attachment] {
	return repositorycache.New(base, store, AttachmentsPrefix)
}

// NewCachedRefreshTokensRepository wraps a refresh tokens repository with
// caching. Tokens are additionally indexed by the owning user's id.
func NewCachedRefreshTokensRepository(base repositorycache.Repository[*RefreshToken], store cache.Store) *repositorycache.CachedRepository[*RefreshToken] {
	return repositorycache.New(base, store, RefreshTokensPrefix, repositorycache.Index[*RefreshToken]{
		Field: "userId",
		Value: func(t *RefreshToken) string { return t.UserID },
	})
}

// NewCachedEmailValidationsRepository wraps an email validations repository
// with caching. Validations are additionally indexed by address.
func NewCachedEmailValidationsRepository(base repositorycache.Repository[*EmailValidation], store cache.Store) *repositorycache.CachedRepository[*EmailValidation] {
	return repositorycache.New(base, store, EmailValidationsPrefix, repositorycache.Index[*EmailValidation]{
		Field: "email",
		Value: func(v *EmailValidation) string { return v.Email },
	})
}

// Repositories aggregates the cached repository of every forum entity.
type Repositories struct {
	Users            *repositorycache.CachedRepository[*User]
	Questions        *repositorycache.CachedRepository[*Question]
	Answers          *repositorycache.CachedRepository[*Answer]
	QuestionComments *repositorycache.CachedRepository[*QuestionComment]
	AnswerComments   *repositorycache.CachedRepository[*AnswerComment]
	Attachments      *repositorycache.CachedRepository[*Attachment]
	RefreshTokens    *repositorycache.CachedRepository[*RefreshToken]
	EmailValidations *repositorycache.CachedRepository[*EmailValidation]
}

// NewRepositories wires a bun-backed cached repository for every entity over
// the shared database and cache store.
func NewRepositories(db *bun.DB, store cache.Store) *Repositories {
	return &Repositories{
		Users:            NewCachedUsersRepository(bunrepo.New[*User](db), store),
		Questions:        NewCachedQuestionsRepository(bunrepo.New[*Question](db), store),
		Answers:          NewCachedAnswersRepository(bunrepo.New[*Answer](db), store),
		QuestionComments: NewCachedQuestionCommentsRepository(bunrepo.New[*QuestionComment](db), store),
		AnswerComments:   NewCachedAnswerCommentsRepository(bunrepo.New[*AnswerComment](db), store),
		Attachments:      NewCachedAttachmentsRepository(bunrepo.New[*Attachment](db), store),
		RefreshTokens:    NewCachedRefreshTokensRepository(bunrepo.New[*RefreshToken](db), store),
		EmailValidations: NewCachedEmailValidationsRepository(bunrepo.New[*EmailValidation](db), store),
	}
}
