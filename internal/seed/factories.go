// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var developerStatuses = []string{
	"Junior Developer",
	"Developer",
	"Senior Developer",
	"Full Stack Developer",
	"Backend Engineer",
	"Frontend Engineer",
	"Engineering Manager",
	"Student or Learning",
	"Instructor or Teacher",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL",
	"PostgreSQL", "Redis", "Docker", "Kubernetes", "React", "Vue",
	"HTML", "CSS", "GraphQL", "gRPC", "AWS", "Terraform",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{db: db, rand: rand.New(rand.NewSource(seed))}
}

// CreateUser persists a user with a deterministic password ("password123")
// so seeded accounts can be logged into during development.
func (f *Factory) CreateUser() (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	name := gofakeit.Name()
	email := fmt.Sprintf("%s%d@%s",
		strings.ToLower(strings.ReplaceAll(name, " ", ".")),
		f.rand.Intn(10000),
		gofakeit.DomainName(),
	)

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Avatar:   service.GravatarURL(email),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile persists a profile with randomized skills, history, and
// social links for the given user.
func (f *Factory) CreateProfile(user *models.User) (*models.Profile, error) {
	handle := strings.ToLower(gofakeit.Username())

	profile := &models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		Bio:            gofakeit.Sentence(12),
		Status:         developerStatuses[f.rand.Intn(len(developerStatuses))],
		GithubUsername: handle,
		Skills:         f.pickSkills(),
		Social: models.Social{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", handle),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", handle),
		},
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}

	for i := 0; i < 1+f.rand.Intn(3); i++ {
		if err := f.db.Create(f.buildExperience(profile.ID)).Error; err != nil {
			return nil, err
		}
	}
	if err := f.db.Create(f.buildEducation(profile.ID)).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

// CreatePost persists a post authored by the given user, stamped with the
// author snapshot like the API does.
func (f *Factory) CreatePost(user *models.User) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		Text:      gofakeit.Paragraph(1, 2, 8, " "),
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: f.pastTime(90),
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by the given user on the given post.
func (f *Factory) CreateComment(post *models.Post, user *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(10),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (f *Factory) pickSkills() models.StringList {
	n := 3 + f.rand.Intn(4)
	picked := make(models.StringList, 0, n)
	for _, i := range f.rand.Perm(len(skillPool))[:n] {
		picked = append(picked, skillPool[i])
	}
	return picked
}

func (f *Factory) buildExperience(profileID uint) *models.Experience {
	from := f.pastTime(365 * 5)
	exp := &models.Experience{
		ProfileID:   profileID,
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from,
		Description: gofakeit.Sentence(15),
	}
	if f.rand.Intn(2) == 0 {
		exp.Current = true
	} else {
		to := from.AddDate(0, 6+f.rand.Intn(30), 0)
		exp.To = &to
	}
	return exp
}

func (f *Factory) buildEducation(profileID uint) *models.Education {
	from := f.pastTime(365 * 10)
	to := from.AddDate(3+f.rand.Intn(2), 0, 0)
	return &models.Education{
		ProfileID:    profileID,
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
	}
}

func (f *Factory) pastTime(maxDays int) time.Time {
	days := f.rand.Intn(maxDays)
	return time.Now().Add(-time.Duration(days)*24*time.Hour -
		time.Duration(f.rand.Intn(24))*time.Hour)
}
