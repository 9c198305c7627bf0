package ports

import (
	"context"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// ProfileService loads and mutates the stored profile. Every update is
// persisted immediately.
type ProfileService interface {
	Load(ctx context.Context) domain.Profile
	Update(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error)
	PickPicture(ctx context.Context, fromCamera bool) (domain.Profile, error)
}
