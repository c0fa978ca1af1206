package store

import "time"

func (s *Store) SetIDGenerator(f func() string) { s.newID = f }

func (s *Store) SetClock(f func() time.Time) { s.now = f }
