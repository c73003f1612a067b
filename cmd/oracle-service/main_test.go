package main

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/radieske/fear-greed-oracle/internal/shared/config"
)

func TestPoolConfig(t *testing.T) {
	pc, err := poolConfig(config.Config{SeedUp: "299", SeedDown: "194.5", Tiers: []string{"1", "5", "10"}, FeedCapacity: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !pc.SeedDown.Equal(decimal.RequireFromString("194.5")) || len(pc.Tiers) != 3 || !pc.Tiers[2].Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected config %+v", pc)
	}

	if _, err := poolConfig(config.Config{SeedUp: "lots", SeedDown: "1"}); err == nil {
		t.Fatal("expected seed parse error")
	}
	if _, err := poolConfig(config.Config{SeedUp: "1", SeedDown: "1", Tiers: []string{"five"}}); err == nil {
		t.Fatal("expected tier parse error")
	}
}
