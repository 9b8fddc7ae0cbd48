package usecase

import (
	"context"

	"rentwheels/internal/domain/draft"
	"rentwheels/internal/infra"
	"rentwheels/internal/pkg/errs"

	"github.com/google/uuid"
)

// DraftQueries lists and fetches a user's resumable drafts. Mutation goes
// through the session manager, not here.
type DraftQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*draft.Draft, error)
	Get(ctx context.Context, userID, draftID uuid.UUID) (*draft.Draft, error)
}

type draftQueriesImpl struct {
	drafts DraftStore
}

func NewDraftQueries(drafts DraftStore) DraftQueries {
	return &draftQueriesImpl{drafts: drafts}
}

func (q *draftQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*draft.Draft, error) {
	drafts, err := q.drafts.ListByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list drafts")
	}
	return drafts, nil
}

func (q *draftQueriesImpl) Get(ctx context.Context, userID, draftID uuid.UUID) (*draft.Draft, error) {
	d, err := q.drafts.Find(ctx, userID, draftID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrDraftNotFound
		}
		return nil, errs.Wrap(err, "failed to find draft")
	}
	return d, nil
}
