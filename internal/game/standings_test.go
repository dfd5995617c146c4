package game

import "testing"

// TestStandingsRanking tests score order and tie breaks
func TestStandingsRanking(t *testing.T) {
	s := NewStandings()
	s.RecordRound("HASAN", "KHALID")
	s.RecordRound("HASAN", "EDUARDO")
	s.RecordRound("khalid", "EDUARDO")

	top := s.GetTop(0)
	if len(top) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(top))
	}
	if top[0].Name != "HASAN" || top[0].Score != 200 || top[0].Rank != 1 {
		t.Errorf("Expected HASAN first with 200, got %+v", top[0])
	}
	if top[1].Name != "KHALID" || top[1].Score != 90 {
		t.Errorf("Expected KHALID second with 90, got %+v", top[1])
	}
	if s.GetRank("eduardo") != 3 {
		t.Errorf("Expected EDUARDO third, got %d", s.GetRank("eduardo"))
	}
	if s.GetRank("HAMMOUD") != 0 {
		t.Error("Expected 0 for an archetype without rounds")
	}
	if got := s.GetTop(1); len(got) != 1 {
		t.Errorf("Expected GetTop(1) to return 1 entry, got %d", len(got))
	}
	if s.Rounds() != 3 {
		t.Errorf("Expected 3 rounds, got %d", s.Rounds())
	}
}

// TestStandingsDraw tests a double KO
func TestStandingsDraw(t *testing.T) {
	s := NewStandings()
	s.RecordRound("", "KHALID")
	top := s.GetTop(0)
	if len(top) != 1 || top[0].Draws != 1 || top[0].Score != 0 {
		t.Errorf("Expected one draw, got %+v", top)
	}
	s.Clear()
	if len(s.GetTop(0)) != 0 {
		t.Error("Expected clear to empty the table")
	}
}
