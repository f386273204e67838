package profiles

import "context"

type Repository interface {
	// Get devuelve ErrNotFound si el usuario no tiene perfil.
	Get(ctx context.Context, userID string) (Profile, error)
	Upsert(ctx context.Context, p Profile) error
}
