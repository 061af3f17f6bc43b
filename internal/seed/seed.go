package seed

import (
	"fmt"
	"log"

	"devlink/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Run populates the database with users, profiles, posts, likes, and
// comments. Roughly two thirds of users get a profile, mirroring a real
// install where some accounts never fill one in.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = opts.NumUsers * 3
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("cleaning database: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)

		if i%3 != 0 {
			if _, err := f.CreateProfile(user); err != nil {
				return fmt.Errorf("creating profile: %w", err)
			}
		}
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rand.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}

	// Sprinkle likes and comments across the mesh.
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID {
				continue
			}
			if f.rand.Intn(4) == 0 {
				like := &models.Like{PostID: post.ID, UserID: user.ID}
				if err := db.Create(like).Error; err != nil {
					return fmt.Errorf("creating like: %w", err)
				}
			}
			if f.rand.Intn(8) == 0 {
				if _, err := f.CreateComment(post, user); err != nil {
					return fmt.Errorf("creating comment: %w", err)
				}
			}
		}
	}

	log.Printf("Seeded %d users and %d posts", len(users), len(posts))
	return nil
}

// Clean removes all seeded data. Children go first so foreign keys hold.
func Clean(db *gorm.DB) error {
	for _, model := range []any{
		&models.Comment{},
		&models.Like{},
		&models.Post{},
		&models.Experience{},
		&models.Education{},
		&models.Profile{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
