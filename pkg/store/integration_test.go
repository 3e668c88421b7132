//go:build integration

package store

import (
	"context"
	"os"
	"testing"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("PERMGROUP_REDIS_ADDR")
	if addr == "" {
		t.Skip("PERMGROUP_REDIS_ADDR not set")
	}
	s, err := NewRedisStore(context.Background(), addr)
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, s)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("PERMGROUP_MONGO_URI")
	if uri == "" {
		t.Skip("PERMGROUP_MONGO_URI not set")
	}
	s, err := NewMongoStore(context.Background(), uri, "permgroup_test")
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, s)
}
