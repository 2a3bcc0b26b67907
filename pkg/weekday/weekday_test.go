package weekday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"канонический индекс проходит без изменений", "3", "3"},
		{"ноль остается нулем", "0", "0"},
		{"ISO-подобная семерка сворачивается в воскресенье", "7", "0"},
		{"название дня с большой буквы", "Monday", "1"},
		{"название дня в нижнем регистре", "saturday", "6"},
		{"название дня в верхнем регистре", "SUNDAY", "0"},
		{"пробелы по краям обрезаются", " 5 ", "5"},
		{"отрицательное число проходит без изменений", "-1", "-1"},
		{"число вне диапазона проходит без изменений", "8", "8"},
		{"мусор проходит без изменений", "someday", "someday"},
		{"пустая строка проходит без изменений", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.raw))
		})
	}
}

func TestFromDate(t *testing.T) {
	// 2026-03-16 - понедельник
	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, FromDate(monday))

	sunday := monday.AddDate(0, 0, 6)
	assert.Equal(t, 0, FromDate(sunday))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("1", 1))
	assert.True(t, Matches("Monday", 1))
	assert.True(t, Matches("7", 0))
	assert.True(t, Matches("sunday", 0))

	assert.False(t, Matches("2", 1))
	assert.False(t, Matches("someday", 1))
	// Нераспознанное значение не совпадает ни с одним днем
	for day := 0; day < 7; day++ {
		assert.False(t, Matches("holiday", day))
	}
}

func TestIsCanonical(t *testing.T) {
	for _, s := range []string{"0", "1", "6"} {
		assert.True(t, IsCanonical(s), s)
	}
	for _, s := range []string{"7", "-1", "01", "monday", ""} {
		assert.False(t, IsCanonical(s), s)
	}
}
