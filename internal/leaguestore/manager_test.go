package leaguestore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/park285/league-keeper/internal/gametypes"
	"github.com/park285/league-keeper/internal/league"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	m, err := NewManager(fmt.Sprintf("redis://%s/0", mr.Addr()))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func mustCreate(t *testing.T, m *Manager, name string, bestOf uint8, accounts ...string) {
	t.Helper()
	players := []string{"Alice", "Bob", "Charly"}
	if err := m.CreateLeague(context.Background(), name, players, accounts, bestOf, gametypes.Standard, "owner.near"); err != nil {
		t.Fatalf("CreateLeague: %v", err)
	}
}

func TestCreateLeagueTwice(t *testing.T) {
	m := newTestManager(t)
	mustCreate(t, m, "SomeLeague", 3)
	err := m.CreateLeague(context.Background(), "SomeLeague", []string{"Alice", "Bob", "Charly"}, nil, 3, gametypes.Standard, "owner.near")
	if !errors.Is(err, ErrLeagueExists) {
		t.Fatalf("expected ErrLeagueExists, got %v", err)
	}
}

func TestCreateLeagueValidationPropagates(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	players := []string{"Alice", "Bob", "Charly"}
	if err := m.CreateLeague(ctx, "SomeLeague", players, nil, 4, gametypes.Standard, "o"); !errors.Is(err, league.ErrEvenBestOf) {
		t.Fatalf("even best_of: got %v", err)
	}
	if err := m.CreateLeague(ctx, "SomeLeague", players, nil, 3, gametypes.Standard, ""); !errors.Is(err, ErrInvalidCaller) {
		t.Fatalf("empty caller: got %v", err)
	}
}

func TestAddGameUnknownLeague(t *testing.T) {
	m := newTestManager(t)
	err := m.AddGame(context.Background(), "Nothing", [2]string{"Alice", "Bob"}, true, "{}", "owner.near")
	if !errors.Is(err, ErrLeagueNotFound) {
		t.Fatalf("expected ErrLeagueNotFound, got %v", err)
	}
}

func TestAddGameAuthorization(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	mustCreate(t, m, "SomeLeague", 3, "mod.near")

	if err := m.AddGame(ctx, "SomeLeague", [2]string{"Alice", "Bob"}, true, "{}", "stranger.near"); !errors.Is(err, league.ErrNotAllowed) {
		t.Fatalf("stranger: got %v", err)
	}
	if err := m.AddGame(ctx, "SomeLeague", [2]string{"Alice", "Bob"}, true, "{}", "mod.near"); err != nil {
		t.Fatalf("trusted account: %v", err)
	}
	if err := m.AddGame(ctx, "SomeLeague", [2]string{"Alice", "Bob"}, true, "{}", "owner.near"); err != nil {
		t.Fatalf("owner: %v", err)
	}
}

func TestAddGameScenarioBestOfThree(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	mustCreate(t, m, "SomeLeague", 3)

	for i := 0; i < 2; i++ {
		if err := m.AddGame(ctx, "SomeLeague", [2]string{"Alice", "Bob"}, true, "{}", "owner.near"); err != nil {
			t.Fatalf("game %d: %v", i+1, err)
		}
	}
	err := m.AddGame(ctx, "SomeLeague", [2]string{"Alice", "Bob"}, true, "{}", "owner.near")
	if !errors.Is(err, league.ErrMatchFinished) {
		t.Fatalf("expected ErrMatchFinished, got %v", err)
	}

	views, err := m.Matches(ctx, "SomeLeague")
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 match, got %d", len(views))
	}
	if views[0].Winner != "Alice" {
		t.Fatalf("expected Alice as winner, got %q", views[0].Winner)
	}
	if len(views[0].Games) != 2 || views[0].Games[0].GameData != "{}" {
		t.Fatalf("unexpected games view: %+v", views[0].Games)
	}
}

func TestAddGameRejectionLeavesStoreUntouched(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	mustCreate(t, m, "SomeLeague", 3)

	if err := m.AddGame(ctx, "SomeLeague", [2]string{"Alice", "Bob"}, true, `{"bad":1}`, "owner.near"); !errors.Is(err, league.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	views, err := m.Matches(ctx, "SomeLeague")
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("rejected call must not create a match, got %d", len(views))
	}
}

func TestIsFinishedAndDelete(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	mustCreate(t, m, "SomeLeague", 1)

	finished, err := m.IsFinished(ctx, "SomeLeague")
	if err != nil || finished {
		t.Fatalf("fresh league: finished=%v err=%v", finished, err)
	}

	// Unfinished delete without force fails even for the owner.
	if err := m.DeleteLeague(ctx, "SomeLeague", false, "owner.near"); !errors.Is(err, league.ErrNotFinished) {
		t.Fatalf("unfinished delete: got %v", err)
	}

	pairs := [][2]string{{"Alice", "Bob"}, {"Alice", "Charly"}, {"Bob", "Charly"}}
	for _, p := range pairs {
		if err := m.AddGame(ctx, "SomeLeague", p, true, "{}", "owner.near"); err != nil {
			t.Fatalf("AddGame %v: %v", p, err)
		}
	}

	finished, err = m.IsFinished(ctx, "SomeLeague")
	if err != nil || !finished {
		t.Fatalf("after all pairs: finished=%v err=%v", finished, err)
	}

	if err := m.DeleteLeague(ctx, "SomeLeague", false, "mod.near"); !errors.Is(err, league.ErrNotOwner) {
		t.Fatalf("non-owner delete: got %v", err)
	}
	if err := m.DeleteLeague(ctx, "SomeLeague", false, "owner.near"); err != nil {
		t.Fatalf("owner delete of finished league: %v", err)
	}
	if _, err := m.IsFinished(ctx, "SomeLeague"); !errors.Is(err, ErrLeagueNotFound) {
		t.Fatalf("league should be gone, got %v", err)
	}
	// Name is free again.
	mustCreate(t, m, "SomeLeague", 1)
}

func TestForceDeleteUnfinished(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	mustCreate(t, m, "SomeLeague", 3)

	if err := m.DeleteLeague(ctx, "SomeLeague", true, "owner.near"); err != nil {
		t.Fatalf("force delete: %v", err)
	}
	if _, err := m.IsFinished(ctx, "SomeLeague"); !errors.Is(err, ErrLeagueNotFound) {
		t.Fatalf("league should be gone, got %v", err)
	}
}

func TestMeta(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	mustCreate(t, m, "SomeLeague", 3, "mod.near")

	meta, err := m.Meta(ctx, "SomeLeague")
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.BestOf != 3 || meta.GameType != "standard" || meta.Owner != "owner.near" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if len(meta.Players) != 3 || meta.Finished {
		t.Fatalf("unexpected roster/finished: %+v", meta)
	}

	if _, err := m.Meta(ctx, "Nothing"); !errors.Is(err, ErrLeagueNotFound) {
		t.Fatalf("unknown league: got %v", err)
	}
}

func TestGameTypes(t *testing.T) {
	m := newTestManager(t)
	names := m.GameTypes()
	if len(names) == 0 {
		t.Fatalf("expected at least one registered game type")
	}
}
