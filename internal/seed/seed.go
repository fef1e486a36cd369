package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers   int
	NumPosts   int
	SkipBcrypt bool
	MaxDays    int
}

// Seeder populates the database with demo accounts and content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rand    *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Children go first so foreign keys
// stay satisfied on databases without cascading deletes.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.Comment{}, &models.Like{}, &models.Follow{},
		&models.Post{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates the fixed demo accounts plus enough generated users to
// reach count. The testuser account always exists so local clients have a
// known login.
func (s *Seeder) SeedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"testuser", "alice", "bob"} {
		user := &models.User{
			Username: name,
			Email:    fmt.Sprintf("%s@example.com", name),
			Password: string(hashedPassword),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("create demo user %s: %w", name, err)
		}
		users = append(users, user)
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Skipping user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// SeedFollowGraph wires a sparse follow mesh between the given users.
// Each user follows a handful of others, never themselves.
func (s *Seeder) SeedFollowGraph(users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	edges := 0
	for _, follower := range users {
		targets := s.rand.Intn(5) + 1
		for j := 0; j < targets; j++ {
			followee := users[s.rand.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			// Duplicate edges hit the unique index; skip them.
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				continue
			}
			edges++
		}
	}
	return edges, nil
}

// SeedEngagement creates posts for random users and sprinkles likes and
// comments over them.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.rand.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		likers := s.rand.Intn(len(users))
		for j := 0; j < likers && j < 10; j++ {
			liker := users[s.rand.Intn(len(users))]
			_ = s.factory.CreateLike(liker, post)
		}

		commenters := s.rand.Intn(5)
		for j := 0; j < commenters; j++ {
			commenter := users[s.rand.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return nil, err
			}
		}

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

// Run executes the full seeding pipeline.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.Printf("%d users created", len(users))

	edges, err := s.SeedFollowGraph(users)
	if err != nil {
		return fmt.Errorf("seed follow graph: %w", err)
	}
	log.Printf("%d follow edges created", edges)

	posts, err := s.SeedEngagement(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seed engagement: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	log.Println("Seeding complete. All accounts use the password: " + DemoPassword)
	return nil
}
