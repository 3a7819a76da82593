package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedRow struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	return NewCacheHelper(client, "test:"), server
}

func TestCacheHelper_SetGet(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t)

	in := cachedRow{ID: 7, Name: "Main Hall"}
	if err := helper.Set(ctx, "hall:7", in, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var out cachedRow
	if err := helper.Get(ctx, "hall:7", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t)

	var out cachedRow
	if err := helper.Get(ctx, "missing", &out); err != ErrCacheNotFound {
		t.Fatalf("expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t)

	_ = helper.Set(ctx, "hall:1", cachedRow{ID: 1}, time.Minute)
	if err := helper.Delete(ctx, "hall:1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	exists, err := helper.Exists(ctx, "hall:1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("key should be gone")
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t)

	_ = helper.Set(ctx, "hall:id:1", cachedRow{ID: 1}, time.Minute)
	_ = helper.Set(ctx, "hall:id:2", cachedRow{ID: 2}, time.Minute)
	_ = helper.Set(ctx, "bus:id:1", cachedRow{ID: 3}, time.Minute)

	if err := helper.InvalidatePattern(ctx, "hall:id:*"); err != nil {
		t.Fatalf("InvalidatePattern: %v", err)
	}

	if exists, _ := helper.Exists(ctx, "hall:id:1"); exists {
		t.Error("hall:id:1 should be invalidated")
	}
	if exists, _ := helper.Exists(ctx, "bus:id:1"); !exists {
		t.Error("bus:id:1 should survive")
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(nil, "")

	if err := helper.Set(ctx, "k", cachedRow{}, time.Minute); err != nil {
		t.Errorf("Set with nil client: %v", err)
	}
	var out cachedRow
	if err := helper.Get(ctx, "k", &out); err != ErrCacheNotAvailable {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}

	// CacheOrExecute must fall through to the fetch.
	called := false
	err := helper.CacheOrExecute(ctx, "k", &out, time.Minute, func() (interface{}, error) {
		called = true
		return cachedRow{ID: 9, Name: "fetched"}, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute: %v", err)
	}
	if !called || out.ID != 9 {
		t.Errorf("fetch not executed: called=%v out=%+v", called, out)
	}
}

func TestCacheHelper_CacheOrExecute_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestCache(t)

	_ = helper.Set(ctx, "row", cachedRow{ID: 3, Name: "cached"}, time.Minute)

	var out cachedRow
	err := helper.CacheOrExecute(ctx, "row", &out, time.Minute, func() (interface{}, error) {
		t.Fatal("fetch must not run on a cache hit")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute: %v", err)
	}
	if out.Name != "cached" {
		t.Errorf("expected cached row, got %+v", out)
	}
}
