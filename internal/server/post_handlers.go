package server

import (
	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

func errPostNotFound() *models.AppError {
	return models.NewNotFoundError("Post")
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id. A malformed id reads the same as an
// unknown post.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, errPostNotFound())
	}

	post, err := s.postService.Get(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, errPostNotFound())
	}

	if err := s.postService.Delete(c.Context(), currentUserID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, errPostNotFound())
	}

	likes, err := s.postService.Like(c.Context(), currentUserID(c), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, errPostNotFound())
	}

	likes, err := s.postService.Unlike(c.Context(), currentUserID(c), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/posts/comment/:id
func (s *Server) AddComment(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, errPostNotFound())
	}

	var req service.AddCommentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comments, err := s.postService.AddComment(c.Context(), currentUserID(c), postID, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, errPostNotFound())
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return models.RespondWithError(c, models.NewNotFoundError("Comment"))
	}

	comments, err := s.postService.DeleteComment(c.Context(), currentUserID(c), postID, commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(comments)
}
