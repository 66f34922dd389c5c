package utils_test

import (
	"context"
	"os"
	"testing"
	"time"

	"ecfrontend/models"
	"ecfrontend/utils"
)

// Round-trips a session through a real Postgres. Set TEST_DATABASE_URL to run.
func TestPostgresStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := utils.OpenDB(dsn)
	if err != nil {
		t.Fatalf("OpenDB error: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	store := utils.NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}

	sess := models.Session{
		Token:        "pgtest-tok1",
		AccessToken:  "t1",
		User:         &models.User{ID: "7", Name: "Ada"},
		CreatedAt:    time.Now().Format(time.RFC3339),
		LastActivity: time.Now().Format(time.RFC3339),
	}
	defer func() {
		if err := store.Delete(ctx, sess.Token); err != nil {
			t.Errorf("cleanup Delete error: %v", err)
		}
	}()
	if err := store.Save(ctx, sess, time.Minute); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.AccessToken != "t1" {
		t.Errorf("access token = %q, want t1", got.AccessToken)
	}
	if got.User == nil || got.User.Name != "Ada" {
		t.Errorf("unexpected user: %+v", got.User)
	}
	if got.ExpiresAt == "" {
		t.Error("expires_at not loaded back")
	} else if _, err := time.Parse(time.RFC3339, got.ExpiresAt); err != nil {
		t.Errorf("expires_at %q is not RFC3339: %v", got.ExpiresAt, err)
	}

	if err := store.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := store.Get(ctx, sess.Token); err != utils.ErrSessionNotFound {
		t.Errorf("Get after delete = %v, want ErrSessionNotFound", err)
	}
}
