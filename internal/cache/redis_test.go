package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisCache(client)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSetAndGet(t *testing.T) {
	c, _ := setupTestCache(t)

	in := payload{Name: "u1", Count: 3}
	if err := c.Set("owner_tasks:u1", in, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var out payload
	if err := c.Get("owner_tasks:u1", &out); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestGetMiss(t *testing.T) {
	c, _ := setupTestCache(t)

	var out payload
	err := c.Get("owner_tasks:unknown", &out)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	c, _ := setupTestCache(t)

	if err := c.Set("owner_tasks:u1", payload{Name: "u1"}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := c.Delete("owner_tasks:u1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	exists, err := c.Exists("owner_tasks:u1")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Error("expected key to be gone after delete")
	}
}

func TestExpiry(t *testing.T) {
	c, mr := setupTestCache(t)

	if err := c.Set("owner_tasks:u1", payload{Name: "u1"}, time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	var out payload
	if err := c.Get("owner_tasks:u1", &out); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss after expiry, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	c, mr := setupTestCache(t)

	if err := c.Health(); err != nil {
		t.Fatalf("health check failed: %v", err)
	}

	mr.Close()
	if err := c.Health(); err == nil {
		t.Error("expected health check to fail after redis shutdown")
	}
}
