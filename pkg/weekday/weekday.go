// Package weekday приводит разнородные представления дня недели к каноническому
// индексу "0".."6" (воскресенье = 0).
//
// В данных встречаются три кодировки: числовая 0-6, числовая 1-7 (ISO-подобная,
// понедельник = 1) и полные названия дней. Все сравнения дней недели в сервисе
// идут только через этот пакет.
package weekday

import (
	"strconv"
	"strings"
	"time"
)

var names = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// Normalize приводит произвольное представление дня недели к каноническому "0".."6"
//
// Правила разрешения неоднозначностей:
//   - числа 0-7 редуцируются через n mod 7 (ISO-подобное "7" = воскресенье = "0")
//   - названия дней сопоставляются без учета регистра
//   - всё остальное проходит без изменений - это сигнал о проблеме в данных,
//     вызывающая сторона должна залогировать предупреждение, а не упасть
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 7 {
		return strconv.Itoa(n % 7)
	}

	if idx, ok := names[strings.ToLower(s)]; ok {
		return strconv.Itoa(idx)
	}

	return raw
}

// FromDate возвращает канонический индекс дня недели для даты
func FromDate(date time.Time) int {
	return int(date.Weekday())
}

// Matches проверяет, что сырое значение дня недели из БД соответствует
// каноническому индексу. Нераспознанные значения не совпадают ни с чем.
func Matches(raw string, canonical int) bool {
	return Normalize(raw) == strconv.Itoa(canonical)
}

// IsCanonical проверяет, что значение уже является каноническим индексом "0".."6"
func IsCanonical(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 6 && s == strconv.Itoa(n)
}
