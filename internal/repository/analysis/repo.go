package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/resumatch/internal/db"
	"github.com/kailas-cloud/resumatch/internal/domain"
	domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"
)

// StatusCompleted is written to the resume status key after a successful save.
const StatusCompleted = "completed"

type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMulti(ctx context.Context, items []db.KVItem) error
}

// Repo persists analysis records keyed by resume identifier.
type Repo struct {
	store store
	now   func() time.Time
	newID func() string
}

// New creates an analysis repository.
func New(s store) *Repo {
	return &Repo{store: s, now: time.Now, newID: uuid.NewString}
}

// Save stores the result and marks the resume as analyzed. A later save for
// the same resume replaces the earlier record.
func (r *Repo) Save(
	ctx context.Context, resumeID string, backend domana.Backend, res domana.Result,
) (domana.Record, error) {
	if resumeID == "" {
		return domana.Record{}, fmt.Errorf("resume id is required: %w", domain.ErrInvalidInput)
	}

	rec := domana.Record{
		ID:         r.newID(),
		ResumeID:   resumeID,
		Backend:    backend,
		AnalyzedAt: r.now().UTC(),
		Analysis:   res,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return domana.Record{}, fmt.Errorf("marshal record: %w", err)
	}

	err = r.store.SetMulti(ctx, []db.KVItem{
		{Key: recordKey(resumeID), Value: data},
		{Key: statusKey(resumeID), Value: []byte(StatusCompleted)},
	})
	if err != nil {
		return domana.Record{}, fmt.Errorf("save analysis %s: %w", resumeID, err)
	}
	return rec, nil
}

// Get loads the latest record for a resume.
func (r *Repo) Get(ctx context.Context, resumeID string) (domana.Record, error) {
	data, err := r.store.Get(ctx, recordKey(resumeID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domana.Record{}, domain.ErrNotFound
		}
		return domana.Record{}, fmt.Errorf("get analysis %s: %w", resumeID, err)
	}

	var rec domana.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domana.Record{}, fmt.Errorf("decode analysis %s: %w", resumeID, err)
	}
	return rec, nil
}

// Status returns the processing status of a resume.
func (r *Repo) Status(ctx context.Context, resumeID string) (string, error) {
	data, err := r.store.Get(ctx, statusKey(resumeID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get status %s: %w", resumeID, err)
	}
	return string(data), nil
}

func recordKey(resumeID string) string {
	return domain.KeyPrefix + "analysis:" + resumeID
}

func statusKey(resumeID string) string {
	return domain.KeyPrefix + "resume_status:" + resumeID
}
