package service

import (
	"context"
	"testing"
	"time"

	"devlink/internal/models"
	"devlink/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccountService(env *testEnv) (*AccountService, *token.Service) {
	tokens := token.NewService("test-secret", time.Hour)
	return NewAccountService(env.db, env.userRepo, tokens), tokens
}

func TestGravatarURL(t *testing.T) {
	// md5 of the lowercased, trimmed email.
	url := GravatarURL("  Dev@Example.COM ")
	assert.Equal(t, "https://gravatar.com/avatar/be9d18f611892a738e54f2a3a171e2f9?s=200&r=pg&d=mm", url)
}

func TestAccountService_Register(t *testing.T) {
	env := setupEnv(t)
	svc, tokens := newAccountService(env)
	ctx := context.Background()

	tok, err := svc.Register(ctx, RegisterInput{
		Name:     "Dev User",
		Email:    "dev@example.com",
		Password: "s3cret!",
	})
	require.NoError(t, err)

	claims, err := tokens.Verify(tok)
	require.NoError(t, err)

	user, err := env.userRepo.GetByID(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Dev User", user.Name)
	assert.Contains(t, user.Avatar, "gravatar.com/avatar/")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret!")))
}

func TestAccountService_RegisterValidation(t *testing.T) {
	env := setupEnv(t)
	svc, _ := newAccountService(env)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    RegisterInput
		param string
	}{
		{"missing name", RegisterInput{Email: "a@b.co", Password: "123456"}, "name"},
		{"bad email", RegisterInput{Name: "A", Email: "nope", Password: "123456"}, "email"},
		{"short password", RegisterInput{Name: "A", Email: "a@b.co", Password: "12345"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			appErr := assertAppError(t, err, models.CodeValidation)
			require.Len(t, appErr.Fields, 1)
			assert.Equal(t, tt.param, appErr.Fields[0].Param)
		})
	}
}

func TestAccountService_RegisterDuplicate(t *testing.T) {
	env := setupEnv(t)
	svc, _ := newAccountService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "123456"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "dup@example.com", Password: "654321"})
	appErr := assertAppError(t, err, models.CodeConflict)
	assert.Equal(t, "User already exists", appErr.Message)
}

func TestAccountService_Authenticate(t *testing.T) {
	env := setupEnv(t)
	svc, tokens := newAccountService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "login@example.com", Password: "123456"})
	require.NoError(t, err)

	tok, err := svc.Authenticate(ctx, LoginInput{Email: "login@example.com", Password: "123456"})
	require.NoError(t, err)
	_, err = tokens.Verify(tok)
	assert.NoError(t, err)

	// Wrong password and unknown email produce the same answer.
	_, err = svc.Authenticate(ctx, LoginInput{Email: "login@example.com", Password: "wrong!"})
	wrongPass := assertAppError(t, err, models.CodeUnauthenticated)

	_, err = svc.Authenticate(ctx, LoginInput{Email: "ghost@example.com", Password: "123456"})
	unknown := assertAppError(t, err, models.CodeUnauthenticated)

	assert.Equal(t, wrongPass.Message, unknown.Message)
}

func TestAccountService_DeleteAccountCascade(t *testing.T) {
	env := setupEnv(t)
	svc, _ := newAccountService(env)
	ctx := context.Background()

	owner := env.createUser(t, "Owner", "owner@example.com")
	other := env.createUser(t, "Other", "other@example.com")

	profile := &models.Profile{UserID: owner.ID, Status: "Dev", Skills: models.StringList{"Go"}}
	require.NoError(t, env.db.Create(profile).Error)
	require.NoError(t, env.db.Create(&models.Experience{ProfileID: profile.ID, Title: "T", Company: "C", From: time.Now()}).Error)

	post := &models.Post{UserID: owner.ID, Text: "bye"}
	require.NoError(t, env.db.Create(post).Error)
	require.NoError(t, env.db.Create(&models.Comment{PostID: post.ID, UserID: other.ID, Text: "nice"}).Error)
	require.NoError(t, env.db.Create(&models.Like{PostID: post.ID, UserID: other.ID}).Error)

	// The owner also interacted with someone else's post.
	otherPost := &models.Post{UserID: other.ID, Text: "stays"}
	require.NoError(t, env.db.Create(otherPost).Error)
	require.NoError(t, env.db.Create(&models.Like{PostID: otherPost.ID, UserID: owner.ID}).Error)

	require.NoError(t, svc.DeleteAccount(ctx, owner.ID))

	var count int64
	env.db.Model(&models.User{}).Where("id = ?", owner.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&models.Profile{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&models.Experience{}).Where("profile_id = ?", profile.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&models.Post{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&models.Like{}).Where("user_id = ?", owner.ID).Count(&count)
	assert.Zero(t, count)

	// The other user's post survives untouched.
	env.db.Model(&models.Post{}).Where("id = ?", otherPost.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAccountService_DeleteAccountFreesEmail(t *testing.T) {
	env := setupEnv(t)
	svc, _ := newAccountService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "reuse@example.com", Password: "123456"})
	require.NoError(t, err)

	user, err := env.userRepo.GetByEmail(ctx, "reuse@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NoError(t, svc.DeleteAccount(ctx, user.ID))

	// The address is available for a new account.
	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "reuse@example.com", Password: "654321"})
	assert.NoError(t, err)
}
