package league

import "testing"

func TestDeriveKeysDeterministic(t *testing.T) {
	a := DeriveKeys("SomeLeague")
	b := DeriveKeys("SomeLeague")
	if a != b {
		t.Fatalf("same name must derive same keys: %+v vs %+v", a, b)
	}
}

func TestDeriveKeysDistinctPerCollection(t *testing.T) {
	k := DeriveKeys("SomeLeague")
	if k.Players == k.Trusted || k.Players == k.Matches || k.Trusted == k.Matches {
		t.Fatalf("collection keys must be pairwise distinct: %+v", k)
	}
}

func TestDeriveKeysDistinctPerLeague(t *testing.T) {
	a := DeriveKeys("LeagueA")
	b := DeriveKeys("LeagueB")
	if a.Players == b.Players || a.Trusted == b.Trusted || a.Matches == b.Matches {
		t.Fatalf("different names must not alias keys")
	}
}
