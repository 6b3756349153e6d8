package portfolio

import (
	"strconv"
	"sync"
	"time"
)

// ID identifies an entity inside one collection. Values derive from the
// wall clock in milliseconds and are bumped so they never repeat.
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// IDSource hands out strictly increasing ids.
type IDSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDSource(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

func (s *IDSource) Next() ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.now().UnixMilli()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return ID(n)
}

var processIDs = NewIDSource(time.Now)

// NextID draws from the process-wide source.
func NextID() ID {
	return processIDs.Next()
}

// Observe makes sure later ids are greater than id, so imported entities
// never collide with new ones.
func (s *IDSource) Observe(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int64(id) > s.last {
		s.last = int64(id)
	}
}
