// Package timeutil содержит типы для работы с календарной датой и временем суток.
// Все значения времени суток приводятся к опорному дню 1970-01-01 UTC,
// поэтому окно активности не может пересекать полночь.
package timeutil

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeFormat возвращается при пустой или некорректной строке времени
	ErrInvalidTimeFormat = errors.New("некорректный формат времени, ожидается HH:MM:SS")
	// ErrInvalidDateFormat возвращается при пустой или некорректной строке даты
	ErrInvalidDateFormat = errors.New("некорректный формат даты, ожидается YYYY-MM-DD")
)

const (
	timeLayout = "15:04:05"
	dateLayout = "2006-01-02"
)

// referenceDay — опорный день, к которому привязываются все значения времени суток
var referenceDay = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// TimeOfDay представляет время суток (часы:минуты:секунды) без даты и часового пояса
type TimeOfDay struct {
	t time.Time
}

// ParseTimeOfDay разбирает строку вида "HH:MM:SS"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if strings.TrimSpace(s) == "" {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	parsed, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	return TimeOfDay{t: time.Date(1970, time.January, 1,
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC)}, nil
}

// MustTimeOfDay разбирает строку и паникует при ошибке. Удобно в тестах и константах.
func MustTimeOfDay(s string) TimeOfDay {
	td, err := ParseTimeOfDay(s)
	if err != nil {
		panic(fmt.Sprintf("timeutil: %v (%q)", err, s))
	}
	return td
}

// String возвращает время в виде "HH:MM:SS"
func (td TimeOfDay) String() string {
	return td.t.Format(timeLayout)
}

// IsZero сообщает, было ли значение заполнено
func (td TimeOfDay) IsZero() bool {
	return td.t.IsZero()
}

// Sub возвращает знаковую разницу между двумя значениями времени суток
func (td TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return td.t.Sub(other.t)
}

// After сообщает, что время строго позже other
func (td TimeOfDay) After(other TimeOfDay) bool {
	return td.t.After(other.t)
}

// Before сообщает, что время строго раньше other
func (td TimeOfDay) Before(other TimeOfDay) bool {
	return td.t.Before(other.t)
}

// Equal сравнивает два значения на равенство
func (td TimeOfDay) Equal(other TimeOfDay) bool {
	return td.t.Equal(other.t)
}

// On совмещает время суток с календарной датой в единый момент UTC
func (td TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		td.t.Hour(), td.t.Minute(), td.t.Second(), 0, time.UTC)
}

// MarshalJSON сериализует время как строку "HH:MM:SS"
func (td TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + td.String() + `"`), nil
}

// UnmarshalJSON разбирает строку "HH:MM:SS"
func (td *TimeOfDay) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*td = TimeOfDay{}
		return nil
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*td = parsed
	return nil
}

// Value реализует driver.Valuer для записи в колонку типа time
func (td TimeOfDay) Value() (driver.Value, error) {
	if td.IsZero() {
		return nil, nil
	}
	return td.String(), nil
}

// Scan реализует sql.Scanner: Postgres отдаёт колонку time как time.Time или строку
func (td *TimeOfDay) Scan(value interface{}) error {
	if value == nil {
		*td = TimeOfDay{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		*td = TimeOfDay{t: time.Date(1970, time.January, 1,
			v.Hour(), v.Minute(), v.Second(), 0, time.UTC)}
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*td = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*td = parsed
		return nil
	default:
		return fmt.Errorf("timeutil: не удалось прочитать время суток из %T", value)
	}
}

// GormDataType задаёт тип колонки для миграций gorm
func (TimeOfDay) GormDataType() string {
	return "time"
}

// ParseDate разбирает календарную дату вида "YYYY-MM-DD" (полночь UTC)
func ParseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, ErrInvalidDateFormat
	}
	parsed, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return parsed, nil
}

// FormatDate возвращает дату в виде "YYYY-MM-DD"
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
