package service

import (
	"context"
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(env *testEnv) *PostService {
	return NewPostService(env.postRepo, env.userRepo)
}

func TestPostService_Create(t *testing.T) {
	env := setupEnv(t)
	svc := newPostService(env)
	ctx := context.Background()

	user := env.createUser(t, "Author", "author@example.com")

	post, err := svc.Create(ctx, user.ID, CreatePostInput{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Text)
	assert.Equal(t, "Author", post.Name, "author name is snapshotted")
	assert.Equal(t, user.Avatar, post.Avatar)

	_, err = svc.Create(ctx, user.ID, CreatePostInput{Text: "   "})
	appErr := assertAppError(t, err, models.CodeValidation)
	assert.Equal(t, "text", appErr.Fields[0].Param)
}

func TestPostService_DeleteOwnership(t *testing.T) {
	env := setupEnv(t)
	svc := newPostService(env)
	ctx := context.Background()

	author := env.createUser(t, "Author", "author@example.com")
	stranger := env.createUser(t, "Stranger", "stranger@example.com")

	post, err := svc.Create(ctx, author.ID, CreatePostInput{Text: "mine"})
	require.NoError(t, err)

	err = svc.Delete(ctx, stranger.ID, post.ID)
	assertAppError(t, err, models.CodeForbidden)

	require.NoError(t, svc.Delete(ctx, author.ID, post.ID))

	_, err = svc.Get(ctx, post.ID)
	assertAppError(t, err, models.CodeNotFound)
}

func TestPostService_LikeUnlike(t *testing.T) {
	env := setupEnv(t)
	svc := newPostService(env)
	ctx := context.Background()

	author := env.createUser(t, "Author", "author@example.com")
	fan := env.createUser(t, "Fan", "fan@example.com")

	post, err := svc.Create(ctx, author.ID, CreatePostInput{Text: "like me"})
	require.NoError(t, err)

	likes, err := svc.Like(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, fan.ID, likes[0].UserID)

	_, err = svc.Like(ctx, fan.ID, post.ID)
	appErr := assertAppError(t, err, models.CodeConflict)
	assert.Equal(t, "Post already liked", appErr.Message)

	likes, err = svc.Unlike(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	_, err = svc.Unlike(ctx, fan.ID, post.ID)
	appErr = assertAppError(t, err, models.CodeValidation)
	assert.Equal(t, "Post has not yet been liked", appErr.Message)
}

func TestPostService_LikeUnknownPost(t *testing.T) {
	env := setupEnv(t)
	svc := newPostService(env)

	user := env.createUser(t, "Fan", "fan@example.com")

	_, err := svc.Like(context.Background(), user.ID, 404)
	assertAppError(t, err, models.CodeNotFound)
}

func TestPostService_Comments(t *testing.T) {
	env := setupEnv(t)
	svc := newPostService(env)
	ctx := context.Background()

	author := env.createUser(t, "Author", "author@example.com")
	commenter := env.createUser(t, "Commenter", "commenter@example.com")

	post, err := svc.Create(ctx, author.ID, CreatePostInput{Text: "discuss"})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, commenter.ID, post.ID, AddCommentInput{Text: ""})
	assertAppError(t, err, models.CodeValidation)

	comments, err := svc.AddComment(ctx, commenter.ID, post.ID, AddCommentInput{Text: "first!"})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Commenter", comments[0].Name, "commenter name is snapshotted")

	// Only the comment's author may delete it.
	_, err = svc.DeleteComment(ctx, author.ID, post.ID, comments[0].ID)
	assertAppError(t, err, models.CodeForbidden)

	remaining, err := svc.DeleteComment(ctx, commenter.ID, post.ID, comments[0].ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Deleting an unknown comment is a not-found, not a no-op.
	_, err = svc.DeleteComment(ctx, commenter.ID, post.ID, 9999)
	assertAppError(t, err, models.CodeNotFound)
}
