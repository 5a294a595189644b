package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

func TestKey(t *testing.T) {
	if got := Key("projects"); got != "portfolio:list:projects" {
		t.Errorf("Key() = %q", got)
	}
}

func TestVersionKey(t *testing.T) {
	if got := VersionKey("projects"); got != "portfolio:list-version:projects" {
		t.Errorf("VersionKey() = %q", got)
	}
	if VersionKey("projects") == Key("projects") {
		t.Error("version and list keys must differ")
	}
}

func TestNewRedisClientOptions(t *testing.T) {
	c := NewRedisClient(config.RedisConfig{Address: "cache:6380", Password: "secret", DB: 2})
	defer c.Close()

	opts := c.Options()
	if opts.Addr != "cache:6380" || opts.Password != "secret" || opts.DB != 2 {
		t.Errorf("options = %+v", opts)
	}
}

// An unreachable Redis must surface errors (callers then fall back to
// MongoDB) instead of hanging or reporting a hit.
func TestListCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewListCache(client, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, hit, err := c.Get(ctx, "skills"); err == nil || hit {
		t.Errorf("Get() hit=%v err=%v, want a miss with an error", hit, err)
	}
	if _, err := c.Version(ctx, "skills"); err == nil {
		t.Error("Version() should fail")
	}
	if stored, err := c.SetIfVersion(ctx, "skills", 0, []byte("x")); err == nil || stored {
		t.Errorf("SetIfVersion() stored=%v err=%v, want a failure", stored, err)
	}
	if err := c.Invalidate(ctx, "skills"); err == nil {
		t.Error("Invalidate() should fail")
	}
	if err := Ping(ctx, client); err == nil {
		t.Error("Ping() should fail")
	}
}
