package cron

import (
	"context"
	"errors"
)

const mirrorFlushJobName = "mirror_flush"

type flusher interface {
	Flush(ctx context.Context) error
}

// MirrorFlushJob rewrites the current engine snapshot to the mirror so a
// failed after-mutation save is retried on the next tick.
type MirrorFlushJob struct {
	target flusher
}

func NewMirrorFlushJob(target flusher) (*MirrorFlushJob, error) {
	if target == nil {
		return nil, errors.New("flush target required")
	}
	return &MirrorFlushJob{target: target}, nil
}

func (j *MirrorFlushJob) Name() string { return mirrorFlushJobName }

func (j *MirrorFlushJob) Run(ctx context.Context) error {
	return j.target.Flush(ctx)
}
