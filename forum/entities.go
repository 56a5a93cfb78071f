// Package forum holds the domain entities of the Q&A backend and the wiring
// that gives each of them a cached repository.
package forum

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"

	"github.com/devforum/go-forum-cache/repositorycache"
)

// Role distinguishes ordinary users from instructors, who may pick best
// answers on any question.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

// User is a registered account.
type User struct {
	bun.BaseModel `bun:"table:users" json:"-"`
	repositorycache.Model

	Name         string `bun:"name,notnull" json:"name"`
	Email        string `bun:"email,notnull,unique" json:"email"`
	PasswordHash string `bun:"password_hash,notnull" json:"passwordHash"`
	Role         Role   `bun:"role,notnull" json:"role"`
}

// Validate reports whether the user carries every required field. The cache
// codec calls it before trusting a decoded entry.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.PasswordHash, validation.Required),
		validation.Field(&u.Role, validation.Required, validation.In(RoleStudent, RoleInstructor)),
	)
}

// Question is a top-level post. Slug is derived from the title and unique.
type Question struct {
	bun.BaseModel `bun:"table:questions" json:"-"`
	repositorycache.Model

	AuthorID     string  `bun:"author_id,notnull" json:"authorId"`
	Title        string  `bun:"title,notnull" json:"title"`
	Slug         string  `bun:"slug,notnull,unique" json:"slug"`
	Content      string  `bun:"content,notnull" json:"content"`
	BestAnswerID *string `bun:"best_answer_id" json:"bestAnswerId,omitempty"`
}

func (q *Question) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.AuthorID, validation.Required),
		validation.Field(&q.Title, validation.Required),
		validation.Field(&q.Slug, validation.Required),
		validation.Field(&q.Content, validation.Required),
	)
}

// Answer replies to a question.
type Answer struct {
	bun.BaseModel `bun:"table:answers" json:"-"`
	repositorycache.Model

	AuthorID   string `bun:"author_id,notnull" json:"authorId"`
	QuestionID string `bun:"question_id,notnull" json:"questionId"`
	Content    string `bun:"content,notnull" json:"content"`
}

func (a *Answer) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.AuthorID, validation.Required),
		validation.Field(&a.QuestionID, validation.Required),
		validation.Field(&a.Content, validation.Required),
	)
}

// QuestionComment is a comment attached to a question.
type QuestionComment struct {
	bun.BaseModel `bun:"table:question_comments" json:"-"`
	repositorycache.Model

	AuthorID   string `bun:"author_id,notnull" json:"authorId"`
	QuestionID string `bun:"question_id,notnull" json:"questionId"`
	Content    string `bun:"content,notnull" json:"content"`
}

func (c *QuestionComment) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AuthorID, validation.Required),
		validation.Field(&c.QuestionID, validation.Required),
		validation.Field(&c.Content, validation.Required),
	)
}

// AnswerComment is a comment attached to an answer.
type AnswerComment struct {
	bun.BaseModel `bun:"table:answer_comments" json:"-"`
	repositorycache.Model

	AuthorID string `bun:"author_id,notnull" json:"authorId"`
	AnswerID string `bun:"answer_id,notnull" json:"answerId"`
	Content  string `bun:"content,notnull" json:"content"`
}

func (c *AnswerComment) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AuthorID, validation.Required),
		validation.Field(&c.AnswerID, validation.Required),
		validation.Field(&c.Content, validation.Required),
	)
}

// Attachment is an uploaded file linked to a question or an answer. Exactly
// one of QuestionID/AnswerID is set once the attachment is claimed; both are
// empty while it is pending.
type Attachment struct {
	bun.BaseModel `bun:"table:attachments" json:"-"`
	repositorycache.Model

	Title      string `bun:"title,notnull" json:"title"`
	URL        string `bun:"url,notnull" json:"url"`
	QuestionID string `bun:"question_id" json:"questionId,omitempty"`
	AnswerID   string `bun:"answer_id" json:"answerId,omitempty"`
}

func (a *Attachment) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Title, validation.Required),
		validation.Field(&a.URL, validation.Required),
	)
}

// RefreshToken is the long-lived credential backing a session. One active
// token per user.
type RefreshToken struct {
	bun.BaseModel `bun:"table:refresh_tokens" json:"-"`
	repositorycache.Model

	UserID    string    `bun:"user_id,notnull,unique" json:"userId"`
	ExpiresAt time.Time `bun:"expires_at,notnull" json:"expiresAt"`
}

func (t *RefreshToken) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.UserID, validation.Required),
		validation.Field(&t.ExpiresAt, validation.Required),
	)
}

// EmailValidation tracks the confirmation code sent to an address during
// sign-up.
type EmailValidation struct {
	bun.BaseModel `bun:"table:email_validations" json:"-"`
	repositorycache.Model

	Email       string     `bun:"email,notnull,unique" json:"email"`
	Code        string     `bun:"code,notnull" json:"code"`
	ConfirmedAt *time.Time `bun:"confirmed_at" json:"confirmedAt,omitempty"`
}

func (v *EmailValidation) Validate() error {
	return validation.ValidateStruct(v,
		validation.Field(&v.Email, validation.Required, is.EmailFormat),
		validation.Field(&v.Code, validation.Required),
	)
}
