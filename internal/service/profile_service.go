package service

import (
	"context"
	"errors"
	"strings"

	"devlink/internal/cache"
	"devlink/internal/github"
	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/validation"
)

// ProfileService manages developer profiles, their experience and education
// history, and the GitHub repo listing.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	github      *github.Client
}

// UpsertProfileInput carries the full profile form. Scalars merge into an
// existing profile only when non-empty; the social block always replaces the
// stored one wholesale.
type UpsertProfileInput struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type AddExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type AddEducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, gh *github.Client) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, github: gh}
}

func errNoProfile() *models.AppError {
	return &models.AppError{Code: models.CodeNotFound, Message: "There is no profile for this user"}
}

// Upsert creates the caller's profile or merges the input into it.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in UpsertProfileInput) (*models.Profile, error) {
	var fields []models.FieldError
	if strings.TrimSpace(in.Status) == "" {
		fields = append(fields, models.FieldError{Msg: "Status is required", Param: "status"})
	}
	if strings.TrimSpace(in.Skills) == "" {
		fields = append(fields, models.FieldError{Msg: "Skills is required", Param: "skills"})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	isNew := profile == nil
	if isNew {
		profile = &models.Profile{UserID: userID}
	}

	// Empty scalar fields keep their stored value; non-empty ones replace it.
	applyScalar(&profile.Company, in.Company)
	applyScalar(&profile.Website, in.Website)
	applyScalar(&profile.Location, in.Location)
	applyScalar(&profile.Bio, in.Bio)
	applyScalar(&profile.Status, in.Status)
	applyScalar(&profile.GithubUsername, in.GithubUsername)
	profile.Skills = validation.SplitSkills(in.Skills)

	// The social block is rebuilt from scratch each time. Omitting a link
	// clears it.
	profile.Social = models.Social{
		Youtube:   strings.TrimSpace(in.Youtube),
		Twitter:   strings.TrimSpace(in.Twitter),
		Facebook:  strings.TrimSpace(in.Facebook),
		Linkedin:  strings.TrimSpace(in.Linkedin),
		Instagram: strings.TrimSpace(in.Instagram),
	}

	if isNew {
		err = s.profileRepo.Create(ctx, profile)
	} else {
		err = s.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

func applyScalar(dst *string, v string) {
	v = strings.TrimSpace(v)
	if v != "" {
		*dst = v
	}
}

// GetByUser returns the profile for a user id, or a not-found error when the
// user never created one.
func (s *ProfileService) GetByUser(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errNoProfile()
	}
	return profile, nil
}

// List returns every profile with its owner's name and avatar.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// AddExperience prepends a work-history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in AddExperienceInput) (*models.Profile, error) {
	var fields []models.FieldError
	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, models.FieldError{Msg: "Title is required", Param: "title"})
	}
	if strings.TrimSpace(in.Company) == "" {
		fields = append(fields, models.FieldError{Msg: "Company is required", Param: "company"})
	}
	from, fromErr := validation.ParseDate(in.From)
	if fromErr != nil {
		fields = append(fields, models.FieldError{Msg: "From date is required", Param: "from"})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errNoProfile()
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		From:        from,
		To:          validation.ParseOptionalDate(in.To),
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveExperience deletes an entry by id. Unknown ids are a silent no-op.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errNoProfile()
	}

	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation prepends an education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in AddEducationInput) (*models.Profile, error) {
	var fields []models.FieldError
	if strings.TrimSpace(in.School) == "" {
		fields = append(fields, models.FieldError{Msg: "School is required", Param: "school"})
	}
	if strings.TrimSpace(in.Degree) == "" {
		fields = append(fields, models.FieldError{Msg: "Degree is required", Param: "degree"})
	}
	if strings.TrimSpace(in.FieldOfStudy) == "" {
		fields = append(fields, models.FieldError{Msg: "Field of study is required", Param: "fieldofstudy"})
	}
	from, fromErr := validation.ParseDate(in.From)
	if fromErr != nil {
		fields = append(fields, models.FieldError{Msg: "From date is required", Param: "from"})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errNoProfile()
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         from,
		To:           validation.ParseOptionalDate(in.To),
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveEducation deletes an entry by id. Unknown ids are a silent no-op.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errNoProfile()
	}

	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// GithubRepos lists the five oldest public repos for a GitHub username.
// Results are cached since the listing rarely changes and GitHub rate-limits
// unauthenticated callers aggressively.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	var repos []github.Repo
	err := cache.Aside(ctx, cache.ReposKey(username), &repos, cache.ReposTTL, func() error {
		fetched, err := s.github.ListRepos(ctx, username)
		if err != nil {
			if errors.Is(err, github.ErrNotFound) {
				return &models.AppError{Code: models.CodeNotFound, Message: "No Github profile found"}
			}
			return models.NewUpstreamError("Github request failed", err)
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}
