// Package decode maps raw database rows and third-party API payloads onto
// domain entities. Decoders are pure and total: they return a fully valid
// entity or a *errors.ValidationError naming the first offending field; they
// never partially construct an entity.
package decode

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	domerrors "github.com/him-Tech/web2-backend-sub000/internal/domain/errors"
)

// Row is a raw row or JSON object keyed by column/field name.
type Row = map[string]any

func requireString(row Row, field string) (string, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return "", domerrors.NewValidationError(field, "string", row)
	}
	s, ok := v.(string)
	if !ok {
		return "", domerrors.NewValidationError(field, "string", row)
	}
	return s, nil
}

func optionalString(row Row, field string) (*string, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, domerrors.NewValidationError(field, "string or null", row)
	}
	return &s, nil
}

func requireBool(row Row, field string) (bool, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return false, domerrors.NewValidationError(field, "boolean", row)
	}
	b, ok := v.(bool)
	if !ok {
		return false, domerrors.NewValidationError(field, "boolean", row)
	}
	return b, nil
}

func optionalBool(row Row, field string) (*bool, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, domerrors.NewValidationError(field, "boolean or null", row)
	}
	return &b, nil
}

// coerceInt accepts the integer shapes drivers and JSON produce, including
// numeric strings (some drivers return numeric columns as text).
func coerceInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func requireInt(row Row, field string) (int64, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return 0, domerrors.NewValidationError(field, "integer", row)
	}
	n, ok := coerceInt(v)
	if !ok {
		return 0, domerrors.NewValidationError(field, "integer", row)
	}
	return n, nil
}

func optionalInt(row Row, field string) (*int64, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return nil, nil
	}
	n, ok := coerceInt(v)
	if !ok {
		return nil, domerrors.NewValidationError(field, "integer or null", row)
	}
	return &n, nil
}

func coerceTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		return parsed, err == nil
	}
	return time.Time{}, false
}

func requireTime(row Row, field string) (time.Time, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return time.Time{}, domerrors.NewValidationError(field, "timestamp", row)
	}
	t, ok := coerceTime(v)
	if !ok {
		return time.Time{}, domerrors.NewValidationError(field, "timestamp", row)
	}
	return t, nil
}

func optionalTime(row Row, field string) (*time.Time, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return nil, nil
	}
	t, ok := coerceTime(v)
	if !ok {
		return nil, domerrors.NewValidationError(field, "timestamp or null", row)
	}
	return &t, nil
}

func coerceUUID(v any) (uuid.UUID, bool) {
	switch id := v.(type) {
	case uuid.UUID:
		return id, true
	case [16]byte:
		return uuid.UUID(id), true
	case string:
		parsed, err := uuid.Parse(id)
		return parsed, err == nil
	}
	return uuid.UUID{}, false
}

func requireUUID(row Row, field string) (uuid.UUID, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return uuid.UUID{}, domerrors.NewValidationError(field, "uuid", row)
	}
	id, ok := coerceUUID(v)
	if !ok {
		return uuid.UUID{}, domerrors.NewValidationError(field, "uuid", row)
	}
	return id, nil
}

func optionalUUID(row Row, field string) (*uuid.UUID, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return nil, nil
	}
	id, ok := coerceUUID(v)
	if !ok {
		return nil, domerrors.NewValidationError(field, "uuid or null", row)
	}
	return &id, nil
}

// requireEnum checks set membership; the error names the field, the offending
// value, and the allowed set.
func requireEnum[T ~string](row Row, field string, allowed []T) (T, error) {
	var zero T
	s, err := requireString(row, field)
	if err != nil {
		return zero, err
	}
	for _, a := range allowed {
		if T(s) == a {
			return T(s), nil
		}
	}
	return zero, domerrors.NewValidationError(field, fmt.Sprintf("one of %v, got %q", allowed, s), row)
}

// stringList accepts nil, []string, or []any of strings (drivers differ on
// how they surface text arrays).
func stringList(row Row, field string) ([]string, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, domerrors.NewValidationError(field, "list of strings", row)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, domerrors.NewValidationError(field, "list of strings", row)
}

func errValidation(field, expected string, payload any) error {
	return domerrors.NewValidationError(field, expected, payload)
}

// object returns a nested JSON object (external API payloads only).
func object(row Row, field string) (Row, error) {
	v, ok := row[field]
	if !ok || v == nil {
		return nil, domerrors.NewValidationError(field, "object", row)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, domerrors.NewValidationError(field, "object", row)
	}
	return m, nil
}
