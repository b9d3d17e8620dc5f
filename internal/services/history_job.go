package services

import (
	"context"

	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/repository"
)

// historyPersistJob writes a finished session's review history in the
// background.
type historyPersistJob struct {
	sessions  repository.SessionRepository
	sessionID string
	items     []models.ReviewHistoryItem
}

func (j *historyPersistJob) Name() string { return "persist-review-history" }

func (j *historyPersistJob) Run(ctx context.Context) error {
	return j.sessions.InsertHistory(ctx, j.sessionID, j.items)
}
