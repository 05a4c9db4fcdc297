package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequest(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := &SignupRequest{FullName: "Jane Blogger", Username: "jane", Password: "secret99"}
		assert.Nil(t, Check(req))
	})

	t.Run("TrimsAndEscapes", func(t *testing.T) {
		req := &SignupRequest{
			FullName: "  Jane <script> ",
			Username: "  jane  ",
			Password: " secret99 ",
		}
		require.Nil(t, Check(req))
		assert.Equal(t, "Jane &lt;script&gt;", req.FullName)
		assert.Equal(t, "jane", req.Username)
		assert.Equal(t, "secret99", req.Password)
	})

	t.Run("WhitespaceFullNameIsEmpty", func(t *testing.T) {
		req := &SignupRequest{FullName: "   ", Username: "jane", Password: "secret99"}
		fields := Check(req)
		require.NotNil(t, fields)
		assert.Equal(t, "This field is required", fields["fullName"])
	})

	t.Run("ShortFields", func(t *testing.T) {
		fields := Check(&SignupRequest{FullName: "Jane", Username: "jan", Password: "abc"})
		require.NotNil(t, fields)
		assert.Equal(t, "Username need to be atleast 4 characters long", fields["username"])
		assert.Equal(t, "Password need to be atleast 4 characters long", fields["password"])
	})
}

func TestLoginRequest(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.Nil(t, Check(&LoginRequest{Username: "jane", Password: "secret99"}))
	})

	t.Run("ShortAfterTrim", func(t *testing.T) {
		fields := Check(&LoginRequest{Username: "  ja  ", Password: "secret99"})
		require.NotNil(t, fields)
		assert.Equal(t, "Username need to be atleast 4 characters long", fields["username"])
	})
}

func TestPostRequest(t *testing.T) {
	published := true
	unpublished := false

	t.Run("Valid", func(t *testing.T) {
		assert.Nil(t, Check(&PostRequest{Title: "Hello", Content: "World", PublishStatus: &published}))
	})

	t.Run("ExplicitFalsePasses", func(t *testing.T) {
		assert.Nil(t, Check(&PostRequest{Title: "Draft", Content: "Hidden", PublishStatus: &unpublished}))
	})

	t.Run("MissingPublishStatus", func(t *testing.T) {
		fields := Check(&PostRequest{Title: "Hello", Content: "World"})
		require.NotNil(t, fields)
		assert.Equal(t, "Publish status need to be a boolean", fields["publishStatus"])
	})

	t.Run("EmptyTitleAndContent", func(t *testing.T) {
		fields := Check(&PostRequest{Title: " ", Content: "", PublishStatus: &published})
		require.NotNil(t, fields)
		assert.Equal(t, "Title can't be empty", fields["title"])
		assert.Equal(t, "Content can't be empty", fields["content"])
	})
}

func TestCommentRequest(t *testing.T) {
	t.Run("AuthorOptional", func(t *testing.T) {
		req := &CommentRequest{Content: "Nice"}
		assert.Nil(t, Check(req))
		assert.Empty(t, req.Author)
	})

	t.Run("ContentRequired", func(t *testing.T) {
		fields := Check(&CommentRequest{Author: "Reader"})
		require.NotNil(t, fields)
		assert.Equal(t, "Content can't be empty", fields["content"])
	})
}

func TestLikesRequest(t *testing.T) {
	likes := func(v float64) *float64 { return &v }

	t.Run("Valid", func(t *testing.T) {
		req := &LikesRequest{Likes: likes(7)}
		assert.Nil(t, Check(req))
		assert.Equal(t, 7, req.Value())
	})

	t.Run("ZeroAllowed", func(t *testing.T) {
		assert.Nil(t, Check(&LikesRequest{Likes: likes(0)}))
	})

	t.Run("MissingRejected", func(t *testing.T) {
		fields := Check(&LikesRequest{})
		require.NotNil(t, fields)
		assert.Equal(t, LikesMessage, fields["likes"])
	})

	t.Run("NegativeRejected", func(t *testing.T) {
		fields := Check(&LikesRequest{Likes: likes(-3)})
		require.NotNil(t, fields)
		assert.Equal(t, LikesMessage, fields["likes"])
	})

	t.Run("FractionTruncates", func(t *testing.T) {
		req := &LikesRequest{Likes: likes(4.9)}
		require.Nil(t, Check(req))
		assert.Equal(t, 4, req.Value())
	})
}
