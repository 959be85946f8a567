package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestIssueAndVerifyMemory(t *testing.T) {
	ctx := context.Background()
	svc := New(nil, time.Minute, false)

	code, err := svc.Issue(ctx, "login:9800000001")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code %q is not 6 digits", code)
	}

	ok, err := svc.Verify(ctx, "login:9800000001", code)
	if err != nil || !ok {
		t.Fatalf("verify: ok=%v err=%v", ok, err)
	}

	// A correct code is consumed.
	ok, err = svc.Verify(ctx, "login:9800000001", code)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if ok {
		t.Fatal("code verified twice")
	}
}

func TestWrongCodeDoesNotConsume(t *testing.T) {
	ctx := context.Background()
	svc := New(nil, time.Minute, false)

	code, err := svc.Issue(ctx, "pickup:o1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ok, err := svc.Verify(ctx, "pickup:o1", "000000")
	if err != nil {
		t.Fatalf("verify wrong: %v", err)
	}
	if ok && code != "000000" {
		t.Fatal("wrong code accepted")
	}

	ok, err = svc.Verify(ctx, "pickup:o1", code)
	if err != nil || !ok {
		t.Fatalf("retry with right code: ok=%v err=%v", ok, err)
	}
}

func TestDevCodeShortCircuits(t *testing.T) {
	ctx := context.Background()
	svc := New(nil, time.Minute, true)

	// Works even when nothing was issued.
	ok, err := svc.Verify(ctx, "login:9800000002", DevCode)
	if err != nil || !ok {
		t.Fatalf("dev code: ok=%v err=%v", ok, err)
	}

	strict := New(nil, time.Minute, false)
	ok, err = strict.Verify(ctx, "login:9800000002", DevCode)
	if err != nil {
		t.Fatalf("strict verify: %v", err)
	}
	if ok {
		t.Fatal("dev code accepted outside dev mode")
	}
}

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	ctx := context.Background()
	svc := New(cache, time.Minute, false)

	code, err := svc.Issue(ctx, "login:9800000003")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ok, err := svc.Verify(ctx, "login:9800000003", code)
	if err != nil || !ok {
		t.Fatalf("verify: ok=%v err=%v", ok, err)
	}

	// Expired codes no longer verify.
	code, err = svc.Issue(ctx, "login:9800000003")
	if err != nil {
		t.Fatalf("reissue: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	ok, err = svc.Verify(ctx, "login:9800000003", code)
	if err != nil {
		t.Fatalf("verify expired: %v", err)
	}
	if ok {
		t.Fatal("expired code accepted")
	}
}
