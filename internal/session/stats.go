package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/agbru/rootcalc/internal/rootfind"
)

// MethodStats aggregates one method over every stored session.
type MethodStats struct {
	Runs              int
	Convergences      int
	AverageIterations float64
	MinIterations     int
	MaxIterations     int
}

// Statistics summarizes the stored sessions.
type Statistics struct {
	TotalSessions int
	// Skipped counts sessions that could not be decoded.
	Skipped  int
	Methods  map[rootfind.Method]MethodStats
	Problems []string
	First    time.Time
	Last     time.Time
}

// SortedMethods returns the keys of Methods in ascending order.
func (st Statistics) SortedMethods() []rootfind.Method {
	keys := make([]rootfind.Method, 0, len(st.Methods))
	for k := range st.Methods {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Statistics loads every session and aggregates convergence counts and
// iteration statistics per method. Unreadable sessions are skipped.
func (s *Store) Statistics() (Statistics, error) {
	names, err := s.List()
	if err != nil {
		return Statistics{}, err
	}
	st := Statistics{Methods: make(map[rootfind.Method]MethodStats)}
	sums := make(map[rootfind.Method]int)

	for _, name := range names {
		sess, err := s.Load(name)
		if err != nil {
			st.Skipped++
			continue
		}
		st.TotalSessions++
		st.Problems = append(st.Problems, fmt.Sprintf("%g → %g", sess.Parameters.CardsValue, sess.Parameters.Target))
		if st.First.IsZero() || sess.Timestamp.Before(st.First) {
			st.First = sess.Timestamp
		}
		if sess.Timestamp.After(st.Last) {
			st.Last = sess.Timestamp
		}

		for _, e := range sess.Results {
			m := st.Methods[e.Result.Method]
			m.Runs++
			if e.Result.Converged {
				n := e.Result.IterationCount
				if m.Convergences == 0 || n < m.MinIterations {
					m.MinIterations = n
				}
				if n > m.MaxIterations {
					m.MaxIterations = n
				}
				m.Convergences++
				sums[e.Result.Method] += n
			}
			st.Methods[e.Result.Method] = m
		}
	}

	for k, m := range st.Methods {
		if m.Convergences > 0 {
			m.AverageIterations = float64(sums[k]) / float64(m.Convergences)
			st.Methods[k] = m
		}
	}
	return st, nil
}
