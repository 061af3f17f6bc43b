package repository

import (
	"context"
	"errors"

	"devlink/internal/cache"
	"devlink/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for developer profiles
// and their experience and education entries.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	AddExperience(ctx context.Context, exp *models.Experience) error
	RemoveExperience(ctx context.Context, profileID, expID uint) error
	AddEducation(ctx context.Context, edu *models.Education) error
	RemoveEducation(ctx context.Context, profileID, eduID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	// Save rewrites all columns so cleared social links actually clear.
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

// errNoProfileRow keeps the cache-aside helper from storing a miss.
var errNoProfileRow = errors.New("no profile row")

// GetByUserID returns (nil, nil) when the user has no profile. Experience
// and education entries come back newest first. Hits are cached under the
// per-user profile key; every profile write invalidates it.
func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		err := r.db.WithContext(ctx).
			Preload("User").
			Preload("Experience", func(db *gorm.DB) *gorm.DB {
				return db.Order("id DESC")
			}).
			Preload("Education", func(db *gorm.DB) *gorm.DB {
				return db.Order("id DESC")
			}).
			Where("user_id = ?", userID).
			First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNoProfileRow
		}
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if errors.Is(err, errNoProfileRow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := cache.Aside(ctx, cache.ProfilesListKey, &profiles, cache.ProfileListTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("User").Find(&profiles).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateForProfile(ctx, exp.ProfileID)
	return nil
}

// RemoveExperience is a no-op when the entry does not exist or belongs to a
// different profile.
func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, expID uint) error {
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Experience{}, expID).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateForProfile(ctx, profileID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *models.Education) error {
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateForProfile(ctx, edu.ProfileID)
	return nil
}

// RemoveEducation is a no-op when the entry does not exist or belongs to a
// different profile.
func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, eduID uint) error {
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.Education{}, eduID).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateForProfile(ctx, profileID)
	return nil
}

func (r *profileRepository) invalidateForProfile(ctx context.Context, profileID uint) {
	var userID uint
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", profileID).
		Pluck("user_id", &userID).Error; err == nil && userID != 0 {
		cache.InvalidateProfile(ctx, userID)
	}
}
