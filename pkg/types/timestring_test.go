package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TimeString
		wantErr  bool
	}{
		{"формат HH:MM", "09:30", "09:30", false},
		{"формат HH:MM:SS усекается до минут", "09:30:45", "09:30", false},
		{"пробелы обрезаются", " 10:00 ", "10:00", false},
		{"полночь", "00:00", "00:00", false},
		{"некорректный час", "25:00", "", true},
		{"некорректные минуты", "10:75", "", true},
		{"мусор", "abc", "", true},
		{"пустая строка", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("09:00")

	got, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	got, err = start.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	// Переход через полночь заворачивается
	late := TimeString("23:45")
	got, err = late.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:15"), got)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	// Лексикографическое сравнение корректно благодаря ведущим нулям
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	moment, err := TimeString("14:30").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 14, 30, 0, 0, time.UTC), moment)

	_, err = TimeString("bad").OnDate(date)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestFormatForStorage(t *testing.T) {
	assert.Equal(t, "09:30:00", FormatForStorage("09:30"))
	assert.Equal(t, "09:30:15", FormatForStorage("09:30:15"))
	assert.Equal(t, "", FormatForStorage(""))
}

func TestFormatForDisplay(t *testing.T) {
	assert.Equal(t, "09:30", FormatForDisplay("09:30:00"))
	assert.Equal(t, "09:30", FormatForDisplay("09:30"))
	assert.Equal(t, "", FormatForDisplay(""))
	assert.Equal(t, "9:3", FormatForDisplay("9:3"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:15:00"))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan([]byte("11:45:30")))
	assert.Equal(t, TimeString("11:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 16, 8, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
