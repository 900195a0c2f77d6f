package ban

import (
	"context"
	"testing"
	"time"
)

func TestMemoryTracker_BansAfterMaxStrikes(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker(Policy{MaxStrikes: 3, StrikeTTL: time.Minute, BanDuration: 10 * time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }

	for i := range 2 {
		banned, err := tr.Strike(ctx, "10.0.0.1", "/api/products")
		if err != nil || banned {
			t.Fatalf("strike %d: banned=%v err=%v", i+1, banned, err)
		}
	}

	banned, _ := tr.Strike(ctx, "10.0.0.1", "/api/products")
	if !banned {
		t.Fatal("expected ban on third strike")
	}
	if ok, _ := tr.IsBanned(ctx, "10.0.0.1"); !ok {
		t.Error("expected target to be banned")
	}
	if ok, _ := tr.IsBanned(ctx, "10.0.0.2"); ok {
		t.Error("other targets should not be banned")
	}

	log := tr.Log()
	if len(log) != 1 || log[0].Route != "/api/products" || log[0].Strikes != 3 {
		t.Errorf("unexpected ban log: %+v", log)
	}

	now = now.Add(11 * time.Minute)
	if ok, _ := tr.IsBanned(ctx, "10.0.0.1"); ok {
		t.Error("ban should expire")
	}
}

func TestMemoryTracker_StrikesExpire(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker(Policy{MaxStrikes: 2, StrikeTTL: time.Minute, BanDuration: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }

	tr.Strike(ctx, "a", "/")
	now = now.Add(2 * time.Minute)
	if banned, _ := tr.Strike(ctx, "a", "/"); banned {
		t.Error("strikes outside the window should not add up")
	}
}
