package server

import (
	"time"

	"inkwell/internal/apperr"
	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
	postCacheTTL     = 5 * time.Minute
)

// pageDescriptor points at a neighbouring page in a paginated listing.
type pageDescriptor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// parsePostID reads the :postId route parameter.
func parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("postId")
	if err != nil || id < 1 {
		return 0, apperr.ValidationMsg("Invalid post ID")
	}
	return uint(id), nil
}

// ListPosts handles GET /posts?status=&page=&limit=
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	status := repository.StatusFilter(c.Query("status", string(repository.StatusAll)))
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", defaultPageLimit)

	fields := make(map[string]string)
	if !status.Valid() {
		fields["status"] = "Status need to be all, publish or unpublish"
	}
	if page < 1 {
		fields["page"] = "Page need to be a number greater than 0"
	}
	if limit < 1 || limit > maxPageLimit {
		fields["limit"] = "Limit need to be a number between 1 and 50"
	}
	if len(fields) > 0 {
		return apperr.Respond(c, apperr.Validation(fields))
	}

	total, err := s.postRepo.Count(ctx, status)
	if err != nil {
		return apperr.Respond(c, err)
	}

	posts, err := s.postRepo.List(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return apperr.Respond(c, err)
	}

	pagesCount := int((total + int64(limit) - 1) / int64(limit))

	resp := fiber.Map{
		"posts":      posts,
		"pagesCount": pagesCount,
	}
	if page > 1 {
		resp["previous"] = pageDescriptor{Page: page - 1, Limit: limit}
	}
	if page < pagesCount {
		resp["next"] = pageDescriptor{Page: page + 1, Limit: limit}
	}

	return c.JSON(resp)
}

// CreatePost handles POST /posts (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	admin, err := s.requireAdmin(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req validation.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, apperr.ValidationMsg("Invalid request body"))
	}
	if fields := validation.Check(&req); fields != nil {
		return apperr.Respond(c, apperr.Validation(fields))
	}

	post := &models.BlogPost{
		Title:         req.Title,
		Content:       req.Content,
		PublishStatus: *req.PublishStatus,
		AuthorID:      &admin.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return apperr.Respond(c, err)
	}

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"msg":  "Success",
		"post": created,
	})
}

// GetPost handles GET /posts/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()

	postID, err := parsePostID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var post models.BlogPost
	err = cache.CacheAside(ctx, cache.PostKey(postID), &post, postCacheTTL, func() error {
		fetched, ferr := s.postRepo.GetByID(ctx, postID)
		if ferr != nil {
			return ferr
		}
		post = *fetched
		return nil
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{"post": post})
}

// UpdatePost handles PUT /posts/:postId (protected)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	if _, err := s.requireAdmin(c); err != nil {
		return apperr.Respond(c, err)
	}

	postID, err := parsePostID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	var req validation.PostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Respond(c, apperr.ValidationMsg("Invalid request body"))
	}
	if fields := validation.Check(&req); fields != nil {
		return apperr.Respond(c, apperr.Validation(fields))
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	post.Title = req.Title
	post.Content = req.Content
	post.PublishStatus = *req.PublishStatus

	if err := s.postRepo.Update(ctx, post); err != nil {
		return apperr.Respond(c, err)
	}
	cache.Invalidate(ctx, cache.PostKey(postID))

	return c.JSON(fiber.Map{"post": post})
}

// DeletePost handles DELETE /posts/:postId (protected). The owner's
// blogPosts list loses the reference; comments are not cascaded.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()

	if _, err := s.requireAdmin(c); err != nil {
		return apperr.Respond(c, err)
	}

	postID, err := parsePostID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return apperr.Respond(c, err)
	}
	cache.Invalidate(ctx, cache.PostKey(postID))

	return c.JSON(fiber.Map{"post": post})
}

// GetPostLikes handles GET /posts/:postId/likes
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	likes, err := s.postRepo.GetLikes(c.Context(), postID)
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(fiber.Map{"likes": likes})
}

// UpdatePostLikes handles PUT /posts/:postId/likes. The supplied value
// overwrites the counter; last writer wins.
func (s *Server) UpdatePostLikes(c *fiber.Ctx) error {
	ctx := c.Context()

	postID, err := parsePostID(c)
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

	post, err := s.postRepo.SetLikes(ctx, postID, req.Value())
	if err != nil {
		return apperr.Respond(c, err)
	}
	cache.Invalidate(ctx, cache.PostKey(postID))

	return c.JSON(fiber.Map{"post": post})
}
