package game

import "testing"

// TestSnapshotPoolPublish tests the triple buffer handoff
func TestSnapshotPoolPublish(t *testing.T) {
	pool := NewSnapshotPool(4)
	if pool.AcquireRead() != nil {
		t.Error("Expected nil before the first publish")
	}

	w := pool.AcquireWrite()
	w.TickNumber = 7
	w.Projectiles = append(w.Projectiles, ProjectileView{ID: 1})
	pool.PublishWrite()

	r := pool.AcquireRead()
	if r == nil || r.TickNumber != 7 || len(r.Projectiles) != 1 {
		t.Fatalf("Expected published snapshot at tick 7, got %+v", r)
	}

	// the next write never lands on the slot being read
	w2 := pool.AcquireWrite()
	if w2 == r {
		t.Error("Expected a different write slot")
	}
	if len(w2.Projectiles) != 0 || w2.Winner != MatchEvent {
		t.Error("Expected a cleared write slot")
	}
	if w2.Sequence != r.Sequence+1 {
		t.Errorf("Expected sequence %d, got %d", r.Sequence+1, w2.Sequence)
	}
}

// TestSnapshotCopy tests deep copies
func TestSnapshotCopy(t *testing.T) {
	s := &MatchSnapshot{
		Projectiles:   []ProjectileView{{ID: 1}},
		Announcements: []Announcement{{Text: "COMBO!"}},
	}
	cp := s.Copy()
	s.Projectiles[0].ID = 2
	s.Announcements[0].Text = "changed"

	if cp.Projectiles[0].ID != 1 || cp.Announcements[0].Text != "COMBO!" {
		t.Error("Expected copy to be independent of the source")
	}
}
