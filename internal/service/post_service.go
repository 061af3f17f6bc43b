package service

import (
	"context"
	"strings"

	"devlink/internal/models"
	"devlink/internal/repository"
)

// PostService manages posts, likes, and comments.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	Text string `json:"text"`
}

type AddCommentInput struct {
	Text string `json:"text"`
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// Create stores a post stamped with the author's current name and avatar.
func (s *PostService) Create(ctx context.Context, userID uint, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewFieldValidationError(models.FieldError{Msg: "Text is required", Param: "text"})
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: userID,
		Text:   in.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns all posts newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

// Get returns a single post with its likes and comments.
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("User not authorized")
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like records a like and returns the updated like list. Liking a post twice
// is a conflict.
func (s *PostService) Like(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	added, err := s.postRepo.Like(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, models.NewConflictError("Post already liked")
	}
	return s.postRepo.Likes(ctx, postID)
}

// Unlike removes a like and returns the updated like list. Unliking a post
// that was never liked is a validation failure.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	removed, err := s.postRepo.Unlike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.NewValidationError("Post has not yet been liked")
	}
	return s.postRepo.Likes(ctx, postID)
}

// AddComment stores a comment stamped with the commenter's current name and
// avatar, and returns the post's updated comment list.
func (s *PostService) AddComment(ctx context.Context, userID, postID uint, in AddCommentInput) ([]models.Comment, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewFieldValidationError(models.FieldError{Msg: "Text is required", Param: "text"})
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   in.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.postRepo.Comments(ctx, postID)
}

// DeleteComment removes a comment. Only its author may delete it. Returns the
// post's remaining comments.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.postRepo.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("User not authorized")
	}

	if err := s.postRepo.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, err
	}
	return s.postRepo.Comments(ctx, postID)
}
