package persistence

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/config"
)

func TestNewPostgres_RequiresDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	if err == nil {
		t.Fatal("expected error without dsn")
	}
	if pg != nil {
		t.Error("expected nil postgres on error")
	}
}

func TestPostgres_NilSafe(t *testing.T) {
	var pg *Postgres
	if pg.PoolHandle() != nil {
		t.Error("expected nil pool")
	}
	if err := pg.Ping(context.Background()); err == nil {
		t.Error("expected ping error for missing pool")
	}
	pg.Close()
}

func TestNewRedis_Disabled(t *testing.T) {
	r := NewRedis(config.RedisConfig{Addr: "localhost:6379", Enabled: false}, zap.NewNop())
	if r.Available() {
		t.Fatal("disabled redis must not be available")
	}
	if err := r.Ping(context.Background()); err == nil {
		t.Error("expected ping error when disabled")
	}
	r.Close()
}
