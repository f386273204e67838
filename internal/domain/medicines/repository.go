package medicines

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m Medicine) error

	// ListByUser devuelve las medicinas del usuario ordenadas por Time asc.
	ListByUser(ctx context.Context, userID string) ([]Medicine, error)

	// UpdateStatus actualiza sólo si id pertenece a userID; si no, ErrNotFound.
	UpdateStatus(ctx context.Context, userID, id string, status Status, at time.Time) (Medicine, error)

	// UpdateTimeByName actualiza todas las medicinas del usuario con ese nombre.
	UpdateTimeByName(ctx context.Context, userID, name, clock string, at time.Time) (int, error)

	// ResetStatuses pone todas las medicinas en status.
	ResetStatuses(ctx context.Context, status Status, at time.Time) (int, error)
}
