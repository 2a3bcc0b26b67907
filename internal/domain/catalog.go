package domain

import "time"

// Service услуга, предоставляемая бизнесом
// Инвариант: DurationMinutes > 0
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           *float64 // nil = цена не указана
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasValidDuration проверяет инвариант длительности
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes > 0
}
