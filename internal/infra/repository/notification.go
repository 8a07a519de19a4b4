package repository

import (
	"context"
	"time"

	"wheelshare/internal/infra"
	"wheelshare/internal/infra/db"
	"wheelshare/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

// CreateJob enqueues a notification in the same transaction as the state
// transition that triggered it. Dispatch happens out of band; a dispatch
// failure never rolls back the transition.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	query, args, err := psql.Insert("notification_jobs").
		Columns("kind", "topic", "payload", "run_at", "status").
		Values(kind, topic, payload, runAt, "pending").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimPendingJobs grabs due jobs with SKIP LOCKED so concurrent sweepers
// never dispatch the same job twice.
const claimPendingJobsSQL = `
UPDATE notification_jobs
SET status = 'processing', attempts = attempts + 1, updated_at = now()
WHERE id IN (
	SELECT id FROM notification_jobs
	WHERE status = 'pending' AND run_at <= $1
	ORDER BY run_at
	LIMIT $2
	FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, topic, payload, run_at`

func (r *NotificationRepository) ClaimPendingJobs(ctx context.Context, now time.Time, limit int32) ([]*shared.NotificationJob, error) {
	rows, err := r.db.Query(ctx, claimPendingJobsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []*shared.NotificationJob
	for rows.Next() {
		var j shared.NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.RunAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkJobDone(ctx context.Context, id uuid.UUID) error {
	return r.setJobStatus(ctx, id, "done", nil)
}

func (r *NotificationRepository) MarkJobFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.setJobStatus(ctx, id, "failed", &reason)
}

func (r *NotificationRepository) setJobStatus(ctx context.Context, id uuid.UUID, status string, lastError *string) error {
	query, args, err := psql.Update("notification_jobs").
		Set("status", status).
		Set("last_error", lastError).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification update", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to update notification job", err)
	}
	return nil
}
