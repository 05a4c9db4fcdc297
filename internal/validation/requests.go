package validation

import (
	"html"
	"strings"
)

// sanitize trims surrounding whitespace and escapes HTML significant
// characters, mirroring the trim+escape treatment applied to every incoming
// text field.
func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// SignupRequest is the schema for POST /admins/signup.
type SignupRequest struct {
	FullName  string `json:"fullName" validate:"required"`
	Username  string `json:"username" validate:"min=4"`
	Password  string `json:"password" validate:"min=4"`
	SignUpKey string `json:"signUpKey"`
}

func (r *SignupRequest) Sanitize() {
	r.FullName = sanitize(r.FullName)
	r.Username = sanitize(r.Username)
	r.Password = sanitize(r.Password)
}

func (r *SignupRequest) Messages() map[string]string {
	return map[string]string{
		"fullName": "This field is required",
		"username": "Username need to be atleast 4 characters long",
		"password": "Password need to be atleast 4 characters long",
	}
}

// LoginRequest is the schema for POST /admins/login.
type LoginRequest struct {
	Username string `json:"username" validate:"min=4"`
	Password string `json:"password" validate:"min=4"`
}

func (r *LoginRequest) Sanitize() {
	r.Username = sanitize(r.Username)
	r.Password = sanitize(r.Password)
}

func (r *LoginRequest) Messages() map[string]string {
	return map[string]string{
		"username": "Username need to be atleast 4 characters long",
		"password": "Password need to be atleast 4 characters long",
	}
}

// PostRequest is the schema for creating and updating posts. PublishStatus is
// a pointer so an explicit false still satisfies the boolean requirement.
type PostRequest struct {
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
	PublishStatus *bool  `json:"publishStatus" validate:"required"`
}

func (r *PostRequest) Sanitize() {
	r.Title = sanitize(r.Title)
	r.Content = sanitize(r.Content)
}

func (r *PostRequest) Messages() map[string]string {
	return map[string]string{
		"title":         "Title can't be empty",
		"content":       "Content can't be empty",
		"publishStatus": "Publish status need to be a boolean",
	}
}

// CommentRequest is the schema for POST /posts/:postId/comments. Author is
// optional; an empty value defaults to Anonymous in the handler.
type CommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content" validate:"required"`
}

func (r *CommentRequest) Sanitize() {
	r.Author = sanitize(r.Author)
	r.Content = sanitize(r.Content)
}

func (r *CommentRequest) Messages() map[string]string {
	return map[string]string{
		"content": "Content can't be empty",
	}
}

// LikesMessage is the failure message for a non-numeric likes value. It also
// applies when the body cannot be parsed as JSON carrying a number.
const LikesMessage = "Likes count need to be a number"

// LikesRequest is the schema for PUT .../likes. The value overwrites the
// counter and must be a non-negative number.
type LikesRequest struct {
	Likes *float64 `json:"likes" validate:"required,gte=0"`
}

func (r *LikesRequest) Sanitize() {}

func (r *LikesRequest) Messages() map[string]string {
	return map[string]string{
		"likes": LikesMessage,
	}
}

// Value returns the likes counter as an integer.
func (r *LikesRequest) Value() int {
	if r.Likes == nil {
		return 0
	}
	return int(*r.Likes)
}
