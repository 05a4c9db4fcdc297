package server

import (
	"inkwell/internal/apperr"
	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// parseCommentID reads the :commentId route parameter.
func parseCommentID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("commentId")
	if err != nil || id < 1 {
		return 0, apperr.ValidationMsg("Invalid comment ID")
	}
	return uint(id), nil
}

// ListComments handles GET /posts/:postId/comments. It returns every comment
// whose back-reference matches the post id; an unknown post yields an empty
// list rather than an error.
func (s *Server) ListComments(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	comments, err := s.commentRepo.ListByPost(c.Context(), postID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{"comments": comments})
}

// CreateComment handles POST /posts/:postId/comments (public).
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()

	postID, err := parsePostID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req validation.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, apperr.ValidationMsg("Invalid request body"))
	}
	if fields := validation.Check(&req); fields != nil {
		return apperr.Respond(c, apperr.Validation(fields))
	}

	// The comment needs an existing post to hang off
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return apperr.Respond(c, err)
	}

	author := req.Author
	if author == "" {
		author = models.AnonymousAuthor
	}

	comment := &models.Comment{
		Author:  author,
		Content: req.Content,
		PostID:  postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return apperr.Respond(c, err)
	}
	cache.Invalidate(ctx, cache.PostKey(postID))

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"comment": comment,
		"post":    post,
	})
}

// GetComment handles GET /posts/:postId/comments/:commentId
func (s *Server) GetComment(c *fiber.Ctx) error {
	commentID, err := parseCommentID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	comment, err := s.commentRepo.GetByID(c.Context(), commentID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{"comment": comment})
}

// DeleteComment handles DELETE /posts/:postId/comments/:commentId (protected).
// The owning post's comments list loses the reference.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()

	if _, err := s.requireAdmin(c); err != nil {
		return apperr.Respond(c, err)
	}

	commentID, err := parseCommentID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return apperr.Respond(c, err)
	}
	cache.Invalidate(ctx, cache.PostKey(comment.PostID))

	return c.JSON(fiber.Map{"comment": comment})
}

// GetCommentLikes handles GET /posts/:postId/comments/:commentId/likes
func (s *Server) GetCommentLikes(c *fiber.Ctx) error {
	commentID, err := parseCommentID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	likes, err := s.commentRepo.GetLikes(c.Context(), commentID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{"likes": likes})
}

// UpdateCommentLikes handles PUT /posts/:postId/comments/:commentId/likes.
// Identical contract to post likes: overwrite, not increment.
func (s *Server) UpdateCommentLikes(c *fiber.Ctx) error {
	ctx := c.Context()

	commentID, err := parseCommentID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req validation.LikesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, apperr.Validation(map[string]string{"likes": validation.LikesMessage}))
	}
	if fields := validation.Check(&req); fields != nil {
		return apperr.Respond(c, apperr.Validation(fields))
	}

	comment, err := s.commentRepo.SetLikes(ctx, commentID, req.Value())
	if err != nil {
		return apperr.Respond(c, err)
	}
	cache.Invalidate(ctx, cache.PostKey(comment.PostID))

	return c.JSON(fiber.Map{"comment": comment})
}
