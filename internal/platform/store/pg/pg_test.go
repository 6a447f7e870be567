package pg

import (
	"context"
	"errors"
	"testing"

	"meetgrid/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpenAppliesConfig(t *testing.T) {
	testkit.Serial(t)
	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return nil, nil
	})

	p, err := Open(context.Background(), Config{URL: "postgres://u:p@localhost:5432/db", MaxConns: 7, SlowMs: 250}, nil,
		func(c *pgxpool.Config) { c.ConnConfig.RuntimeParams["application_name"] = "meetgrid" })
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	if seen.MaxConns != 7 || seen.ConnConfig.RuntimeParams["application_name"] != "meetgrid" {
		t.Fatalf("pool config = max %d params %v", seen.MaxConns, seen.ConnConfig.RuntimeParams)
	}
	if p.SlowMs != 250 {
		t.Fatalf("slow ms = %d", p.SlowMs)
	}
}

func TestOpenErrors(t *testing.T) {
	testkit.Serial(t)
	if _, err := Open(context.Background(), Config{URL: "postgres://%zz"}, nil, nil); err == nil {
		t.Fatalf("bad url should fail")
	}

	boom := errors.New("boom")
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) { return nil, boom })
	if _, err := Open(context.Background(), Config{URL: "postgres://localhost/db"}, nil, nil); !errors.Is(err, boom) {
		t.Fatalf("pool error = %v", err)
	}
}
