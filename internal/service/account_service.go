// Package service contains the business logic between HTTP handlers and repositories.
package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"

	"devlink/internal/cache"
	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/token"
	"devlink/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService handles registration, login, and account removal.
type AccountService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	tokens   *token.Service
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewAccountService returns a new AccountService. The gorm handle is used for
// the multi-table transaction when an account is deleted.
func NewAccountService(db *gorm.DB, userRepo repository.UserRepository, tokens *token.Service) *AccountService {
	return &AccountService{db: db, userRepo: userRepo, tokens: tokens}
}

// GravatarURL derives the avatar for an email address. Size 200, PG rating,
// identicon fallback, matching what the web client expects.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}

// Register creates a user account and returns a signed session token.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (string, error) {
	var fields []models.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, models.FieldError{Msg: "Name is required", Param: "name"})
	}
	if !validation.ValidateEmail(in.Email) {
		fields = append(fields, models.FieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if !validation.ValidatePassword(in.Password) {
		fields = append(fields, models.FieldError{Msg: "Please enter a password with 6 or more characters", Param: "password"})
	}
	if len(fields) > 0 {
		return "", models.NewFieldValidationError(fields...)
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewConflictError("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Password: string(hash),
		Avatar:   GravatarURL(in.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return tok, nil
}

// Authenticate verifies credentials and returns a signed session token.
// Unknown email and wrong password produce the same answer.
func (s *AccountService) Authenticate(ctx context.Context, in LoginInput) (string, error) {
	var fields []models.FieldError
	if !validation.ValidateEmail(in.Email) {
		fields = append(fields, models.FieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if in.Password == "" {
		fields = append(fields, models.FieldError{Msg: "Password is required", Param: "password"})
	}
	if len(fields) > 0 {
		return "", models.NewFieldValidationError(fields...)
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewUnauthenticatedError("Invalid Credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", models.NewUnauthenticatedError("Invalid Credentials")
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return tok, nil
}

// GetCurrent returns the authenticated user without the password hash.
func (s *AccountService) GetCurrent(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// DeleteAccount removes the user and everything they own: posts with their
// comments and likes, the profile with its history entries, then the user
// row itself. All or nothing.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		// Likes and comments the user left on other people's posts go too.
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		var profileIDs []uint
		if err := tx.Model(&models.Profile{}).Where("user_id = ?", userID).Pluck("id", &profileIDs).Error; err != nil {
			return err
		}
		if len(profileIDs) > 0 {
			if err := tx.Where("profile_id IN ?", profileIDs).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id IN ?", profileIDs).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
				return err
			}
		}

		// Hard delete: a soft-deleted row would keep the unique email
		// index occupied and block re-registration with the same address.
		return tx.Unscoped().Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, userID)
	cache.InvalidateProfile(ctx, userID)
	return nil
}
