package domain

import "time"

// Customer клиент, записавшийся на услугу
// Создается при подтверждении первой записи (поиск по телефону в рамках бизнеса)
type Customer struct {
	ID         int64
	BusinessID int64
	Name       string
	Phone      string
	Email      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
