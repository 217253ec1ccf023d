package clinic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date es una fecha sin hora (dob, payment_date). Se serializa como YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf trunca t a medianoche UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// ParseDate acepta YYYY-MM-DD o un timestamp RFC3339 (se queda con la fecha).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &json.UnmarshalTypeError{Value: "non-string", Type: dateType}
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + s, Type: dateType}
	}
	*d = parsed
	return nil
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	dateLayout,
}

// DateTime es el formato de entrada de appointment_date: RFC3339 o
// la hora local sin zona que mandan los formularios (se asume UTC).
type DateTime struct {
	time.Time
}

func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{Time: t.UTC()}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid datetime %q", s)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &json.UnmarshalTypeError{Value: "non-string", Type: dateTimeType}
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + s, Type: dateTimeType}
	}
	*d = parsed
	return nil
}

// Nullable distingue en un PATCH entre campo ausente, null y valor.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Null construye un Nullable enviado explícitamente como null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		var zero T
		n.Valid, n.Value = false, zero
		return nil
	}
	if err := json.Unmarshal(b, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Apply escribe en dst sólo si el campo vino en el body.
func (n Nullable[T]) Apply(dst **T) {
	if n.Set {
		*dst = n.Ptr()
	}
}

// validationValue entrega un puntero: así omitempty saltea sólo el null y
// un 0 explícito sigue pasando por gt=0.
func (n Nullable[T]) validationValue() any {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Round2 redondea montos y pesos a 2 decimales.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func hasAtMost2Decimals(v float64) bool {
	scaled := v * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

// TrimSpace recorta en el lugar los strings opcionales de un PATCH.
func TrimSpace(fields ...**string) {
	for _, f := range fields {
		if *f != nil {
			v := strings.TrimSpace(**f)
			*f = &v
		}
	}
}
