package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// exerciseKV runs the shared backend contract against kv.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, KeyToken); err != nil || ok {
		t.Fatalf("fresh backend: ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, KeyToken, "tok-1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	v, ok, err := kv.Get(ctx, KeyToken)
	if err != nil || !ok || v != "tok-1" {
		t.Fatalf("get = %q ok=%v err=%v", v, ok, err)
	}

	if err := kv.Set(ctx, KeyToken, "tok-2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if v, _, _ := kv.Get(ctx, KeyToken); v != "tok-2" {
		t.Fatalf("get after overwrite = %q", v)
	}

	if err := kv.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeyToken); ok {
		t.Fatal("deleted key still present")
	}

	// Deleting an absent key is not an error.
	if err := kv.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestFileKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "envelope.json")
	exerciseKV(t, NewFileKV(path))
}

func TestFileKVPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "envelope.json")

	first := NewFileKV(path)
	if err := first.Set(ctx, KeyUser, `{"id":"u-1"}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	second := NewFileKV(path)
	v, ok, err := second.Get(ctx, KeyUser)
	if err != nil || !ok || v != `{"id":"u-1"}` {
		t.Fatalf("get = %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileKVCorruptDocumentTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "envelope.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	kv := NewFileKV(path)
	if _, ok, err := kv.Get(ctx, KeyUser); err != nil || ok {
		t.Fatalf("corrupt file: ok=%v err=%v", ok, err)
	}
	// Writes still work after corruption.
	if err := kv.Set(ctx, KeyUser, "{}"); err != nil {
		t.Fatalf("set after corruption failed: %v", err)
	}
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	kv, err := OpenSQLiteKV(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer kv.Close()

	exerciseKV(t, kv)
}

func TestSQLiteKVPersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.db")

	first, err := OpenSQLiteKV(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := first.Set(ctx, KeyToken, "tok-1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	second, err := OpenSQLiteKV(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	v, ok, err := second.Get(ctx, KeyToken)
	if err != nil || !ok || v != "tok-1" {
		t.Fatalf("get = %q ok=%v err=%v", v, ok, err)
	}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisKV(t *testing.T) {
	_, rdb := newTestRedis(t)
	exerciseKV(t, NewRedisKV(rdb, "sk-test"))
}

func TestRedisKVPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)

	a := NewRedisKV(rdb, "install-a")
	b := NewRedisKV(rdb, "install-b")

	if err := a.Set(ctx, KeyToken, "tok-a"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if _, ok, _ := b.Get(ctx, KeyToken); ok {
		t.Fatal("prefixes must isolate installations")
	}
}

func TestRedisKVBackendFailure(t *testing.T) {
	mr, rdb := newTestRedis(t)
	kv := NewRedisKV(rdb, "sk-test")
	mr.Close()

	if _, _, err := kv.Get(context.Background(), KeyToken); err == nil {
		t.Fatal("expected an error from a dead backend")
	}
}
