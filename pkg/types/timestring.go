package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате строки времени
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString время суток в формате "HH:MM"
// Используется для хранения и сравнения времени слотов без привязки к дате и таймзоне
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит строку формата "HH:MM" или "HH:MM:SS"
// Секунды отбрасываются - точность сетки слотов минутная
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) > 5 {
		s = s[:5]
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(s), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата
func (t TimeString) Validate() error {
	if _, err := time.Parse("15:04", string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперед
// Переход через полночь не поддерживается - окна доступности не пересекают границу дня
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += minutes
	return TimeString(fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)), nil
}

// IsBefore проверяет, что время строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// OnDate совмещает время суток с календарной датой
func (t TimeString) OnDate(date time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// БД хранит время в формате "HH:MM:SS", усекаем до минут
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(truncateToMinutes(v))
	case []byte:
		*t = TimeString(truncateToMinutes(string(v)))
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
	return nil
}

func truncateToMinutes(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// FormatForStorage приводит время к формату хранения "HH:MM:SS"
// Дописывает ":00", если секунды отсутствуют; уже расширенный формат возвращается как есть
// Тотальная функция: некорректный ввод проходит без изменений
func FormatForStorage(s string) string {
	if s == "" {
		return s
	}
	if strings.Count(s, ":") == 1 {
		return s + ":00"
	}
	return s
}

// FormatForDisplay усекает время хранения "HH:MM:SS" до "HH:MM" для отображения
// Пустой ввод дает пустую строку; ввод короче 5 символов проходит без изменений
func FormatForDisplay(s string) string {
	if s == "" {
		return ""
	}
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
