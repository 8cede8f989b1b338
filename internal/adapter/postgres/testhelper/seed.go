package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/insight-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an auth user with the given password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool, passwordHash string) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Username:     "testuser-" + suffix,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO auth.users (id, email, username, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// SeedAuthor inserts an author with a unique name prefixed by name.
func SeedAuthor(t *testing.T, pool *pgxpool.Pool, name, category string) domain.AuthorRef {
	t.Helper()

	ref := domain.AuthorRef{Name: name + " " + uniqueSuffix()}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO records.authors (name, author_category) VALUES ($1, $2) RETURNING author_id`,
		ref.Name, category,
	).Scan(&ref.AuthorID)
	if err != nil {
		t.Fatalf("testhelper: SeedAuthor: %v", err)
	}
	return ref
}

// SeedPost inserts a post for authorID with metadata. Posts with tags are
// marked as carrying an image.
func SeedPost(t *testing.T, pool *pgxpool.Pool, authorID int64, title, category string, contentLength int, tags []string) domain.PostRef {
	t.Helper()
	ctx := context.Background()
	if tags == nil {
		tags = []string{}
	}

	ref := domain.PostRef{Title: title + " " + uniqueSuffix()}
	err := pool.QueryRow(ctx,
		`INSERT INTO records.posts (author_id, title, category, content_length)
		 VALUES ($1, $2, $3, $4) RETURNING post_id`,
		authorID, ref.Title, category, contentLength,
	).Scan(&ref.PostID)
	if err != nil {
		t.Fatalf("testhelper: SeedPost: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO records.post_metadata (post_id, tags, has_media, media_type, is_promoted)
		 VALUES ($1, $2, $3, $4, $5)`,
		ref.PostID, tags, len(tags) > 0, "image", false,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPost metadata: %v", err)
	}
	return ref
}

// SeedEngagements inserts count engagements of kind on postID at ts.
func SeedEngagements(t *testing.T, pool *pgxpool.Pool, postID int64, kind string, ts time.Time, count int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO records.engagements (post_id, type, engagement_timestamp)
		 SELECT $1, $2, $3 FROM generate_series(1, $4)`,
		postID, kind, ts, count,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEngagements: %v", err)
	}
}

// SeedAudienceUser inserts a records.users row and returns its id.
func SeedAudienceUser(t *testing.T, pool *pgxpool.Pool, username string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO records.users (username, country, signup_date)
		 VALUES ($1, 'US', CURRENT_DATE) RETURNING user_id`,
		username+"-"+uniqueSuffix(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedAudienceUser: %v", err)
	}
	return id
}

// SeedUserEngagements inserts count engagements of kind by userID on postID at ts.
func SeedUserEngagements(t *testing.T, pool *pgxpool.Pool, postID, userID int64, kind string, ts time.Time, count int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO records.engagements (post_id, user_id, type, engagement_timestamp)
		 SELECT $1, $2, $3, $4 FROM generate_series(1, $5)`,
		postID, userID, kind, ts, count,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUserEngagements: %v", err)
	}
}
