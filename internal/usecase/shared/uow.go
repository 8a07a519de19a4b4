package shared

import (
	"context"
	"time"

	"wheelshare/internal/domain/booking"
	"wheelshare/internal/domain/car"
	"wheelshare/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-committed transaction for write operations with
	// retry on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Cars() CarRepository
	Notifications() NotificationRepository
	DB() db.DBTX
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindByIDForUpdate loads and row-locks a booking so the state transition
	// and its side effects commit as one unit.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// Save persists status, payment fields and lifecycle timestamps in a
	// single UPDATE.
	Save(ctx context.Context, b *booking.Booking) error
	// ExistsOverlapping is the availability index: true iff any non-terminal
	// booking for the car overlaps the half-open period. excludeID lets a
	// transition re-validate a booking against the others without colliding
	// with itself.
	ExistsOverlapping(ctx context.Context, carID uuid.UUID, p booking.Period, excludeID *uuid.UUID) (bool, error)
	// FindExpiredHoldIDs lists PAYMENT_PENDING bookings created before the
	// cutoff, for the expiry sweep.
	FindExpiredHoldIDs(ctx context.Context, cutoff time.Time, limit int32) ([]uuid.UUID, error)
	// FindEndedConfirmedIDs lists CONFIRMED bookings whose period has ended,
	// for the completion sweep.
	FindEndedConfirmedIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error)
}

type CarRepository interface {
	Create(ctx context.Context, c *car.Car) error
	// FindByIDForUpdate row-locks the car: the lock serializes the
	// availability check and the booking insert for the same vehicle.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*car.Car, error)
	SetListed(ctx context.Context, id uuid.UUID, listed bool) error
	// SetAvailableNow maintains the cached availability hint. Never
	// authoritative; the availability index is.
	SetAvailableNow(ctx context.Context, id uuid.UUID, available bool) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
	// ClaimPendingJobs marks due jobs as claimed and returns them for
	// dispatch.
	ClaimPendingJobs(ctx context.Context, now time.Time, limit int32) ([]*NotificationJob, error)
	MarkJobDone(ctx context.Context, id uuid.UUID) error
	MarkJobFailed(ctx context.Context, id uuid.UUID, reason string) error
}

type NotificationJob struct {
	ID      uuid.UUID
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}
