package redis

import (
	"testing"
	"time"

	"github.com/arkodas/banglamart-backend/pkg/config"
)

func TestOptionsFromConfig_URL(t *testing.T) {
	cfg := config.RedisConfig{
		URL:          "redis://:pw@localhost:6380/2",
		PoolSize:     12,
		MinIdleConns: 3,
		DialTimeout:  2 * time.Second,
	}

	opts, err := optionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 12 {
		t.Fatalf("expected pool size from config, got %d", opts.PoolSize)
	}
}

func TestOptionsFromConfig_Missing(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}

	if got := c.LocationKey("client-42"); got != "bm:location:client-42" {
		t.Fatalf("unexpected location key %q", got)
	}
	if got := c.CounterKey("estimates"); got != "bm:counter:estimates" {
		t.Fatalf("unexpected counter key %q", got)
	}
	if got := c.LocationKey("  "); got != "bm:location" {
		t.Fatalf("expected blank parts dropped, got %q", got)
	}
}
