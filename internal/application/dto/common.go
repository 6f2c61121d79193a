package dto

import (
	"fmt"
	"strings"
	"time"
)

// ErrorResponse cuerpo de error HTTP. Reason y Line solo en rechazos de validación.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// Formatos de fecha aceptados en la entrada.
const (
	DateLayout = "2006-01-02"
)

// ParseDate acepta "2006-01-02" o RFC3339 (con o sin fracción de segundo).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q (esperado %s o RFC3339)", s, DateLayout)
}

// Date fecha de negocio que acepta en JSON los mismos formatos que ParseDate.
type Date struct {
	time.Time
}

// UnmarshalJSON decodifica "2006-01-02" o RFC3339; null deja la fecha en cero.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("fecha debe ser string: %s", s)
	}
	t, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON siempre RFC3339.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(time.RFC3339Nano) + `"`), nil
}
