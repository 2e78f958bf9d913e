package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"ghar-ko-sathi/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.New("invalid cursor")

// Cursor is a keyset position over (requested_at DESC, id DESC).
type Cursor struct {
	RequestedAt time.Time
	ID          uuid.UUID
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeCursor(t time.Time, id uuid.UUID) string {
	data := CursorVersionV1 + ":" + strconv.FormatInt(t.UnixMicro(), 10) + "|" + id.String()
	return base64.RawURLEncoding.EncodeToString([]byte(data))
}

func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	payload, ok := strings.CutPrefix(string(raw), CursorVersionV1+":")
	if !ok {
		return nil, ErrInvalidCursor
	}

	micros, idPart, ok := strings.Cut(payload, "|")
	if !ok {
		return nil, ErrInvalidCursor
	}

	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}

	return &Cursor{RequestedAt: time.UnixMicro(ts).UTC(), ID: id}, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
