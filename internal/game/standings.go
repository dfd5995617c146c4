package game

import (
	"sort"
	"strings"
	"sync"
)

// Standings ranks archetypes across rounds.
// Score is wins * 100 - losses * 10, ties broken by name.
type Standings struct {
	mu      sync.RWMutex
	records map[string]*StandingsEntry
}

// StandingsEntry is one archetype's record
type StandingsEntry struct {
	Name   string  `json:"name"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Draws  int     `json:"draws"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
}

// NewStandings creates an empty table
func NewStandings() *Standings {
	return &Standings{records: make(map[string]*StandingsEntry)}
}

func (s *Standings) entry(name string) *StandingsEntry {
	name = strings.ToUpper(name)
	e, ok := s.records[name]
	if !ok {
		e = &StandingsEntry{Name: name}
		s.records[name] = e
	}
	return e
}

// RecordRound stores a finished round. An empty winner records a draw.
func (s *Standings) RecordRound(winner, loser string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if winner == "" {
		s.entry(loser).Draws++
		return
	}
	w := s.entry(winner)
	w.Wins++
	w.Score = float64(w.Wins)*100 - float64(w.Losses)*10

	l := s.entry(loser)
	l.Losses++
	l.Score = float64(l.Wins)*100 - float64(l.Losses)*10
}

// GetTop returns the best n entries (all when n <= 0)
func (s *Standings) GetTop(n int) []StandingsEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StandingsEntry, 0, len(s.records))
	for _, e := range s.records {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// GetRank returns an archetype's 1-based rank, 0 if it has no record
func (s *Standings) GetRank(name string) int {
	name = strings.ToUpper(name)
	for _, e := range s.GetTop(0) {
		if e.Name == name {
			return e.Rank
		}
	}
	return 0
}

// Rounds returns the number of rounds recorded
func (s *Standings) Rounds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, e := range s.records {
		total += e.Wins + e.Draws
	}
	return total
}

// Clear drops every record
func (s *Standings) Clear() {
	s.mu.Lock()
	s.records = make(map[string]*StandingsEntry)
	s.mu.Unlock()
}
