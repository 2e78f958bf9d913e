package cache

import (
	"context"
	"encoding/json"
	"time"

	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/usecase/readmodel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type cachedBooking struct {
	BookingID  string  `gorm:"primaryKey"`
	CustomerID string  `gorm:"not null;index"`
	ProviderID *string `gorm:"index"`
	Status     string  `gorm:"not null"`
	// ServerUpdatedAt avoids gorm's automatic UpdatedAt handling.
	ServerUpdatedAt time.Time      `gorm:"not null"`
	Optimistic      bool           `gorm:"not null;default:false"`
	Snapshot        datatypes.JSON `gorm:"not null"`
}

func (cachedBooking) TableName() string { return "cached_bookings" }

type pendingAction struct {
	ID        string         `gorm:"primaryKey"`
	Seq       int64          `gorm:"not null;uniqueIndex"`
	Event     string         `gorm:"not null"`
	BookingID *string        `gorm:"index"`
	Payload   datatypes.JSON `gorm:"not null"`
	QueuedAt  time.Time      `gorm:"not null"`
}

func (pendingAction) TableName() string { return "pending_actions" }

// SQLiteStore keeps the client mirror in a local SQLite file.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" in tests.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, errs.Wrap(err, "open client cache")
	}
	return NewSQLiteStore(db)
}

func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&cachedBooking{}, &pendingAction{}); err != nil {
		return nil, errs.Wrap(err, "migrate client cache")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) LoadEntries(ctx context.Context) ([]Entry, error) {
	var rows []cachedBooking
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		var b readmodel.BookingRM
		if err := json.Unmarshal(r.Snapshot, &b); err != nil {
			return nil, errs.Wrapf(err, "decode cached booking %s", r.BookingID)
		}
		out = append(out, Entry{Booking: b, Optimistic: r.Optimistic})
	}
	return out, nil
}

func (s *SQLiteStore) LoadPending(ctx context.Context) ([]PendingAction, error) {
	var rows []pendingAction
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]PendingAction, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, errs.Wrapf(err, "pending action id %q", r.ID)
		}
		a := PendingAction{
			ID:       id,
			Seq:      r.Seq,
			Event:    r.Event,
			Data:     json.RawMessage(r.Payload),
			QueuedAt: r.QueuedAt,
		}
		if r.BookingID != nil {
			bid, err := uuid.Parse(*r.BookingID)
			if err != nil {
				return nil, errs.Wrapf(err, "pending action booking id %q", *r.BookingID)
			}
			a.BookingID = &bid
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *SQLiteStore) SaveEntry(ctx context.Context, e Entry) error {
	snapshot, err := json.Marshal(e.Booking)
	if err != nil {
		return err
	}
	row := cachedBooking{
		BookingID:       e.Booking.ID.String(),
		CustomerID:      e.Booking.CustomerID.String(),
		Status:          e.Booking.Status,
		ServerUpdatedAt: e.Booking.UpdatedAt,
		Optimistic:      e.Optimistic,
		Snapshot:        datatypes.JSON(snapshot),
	}
	if e.Booking.ProviderID != nil {
		p := e.Booking.ProviderID.String()
		row.ProviderID = &p
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

func (s *SQLiteStore) SavePending(ctx context.Context, a PendingAction) error {
	payload := a.Data
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	row := pendingAction{
		ID:       a.ID.String(),
		Seq:      a.Seq,
		Event:    a.Event,
		Payload:  datatypes.JSON(payload),
		QueuedAt: a.QueuedAt,
	}
	if a.BookingID != nil {
		b := a.BookingID.String()
		row.BookingID = &b
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *SQLiteStore) DeletePending(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&pendingAction{}, "id = ?", id.String()).Error
}
