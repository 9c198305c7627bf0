package ports

import (
	"context"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// HomeService backs the home and service detail screens.
type HomeService interface {
	Services(query string) []domain.Service
	Service(id string) (domain.Service, bool)
	Providers(serviceID string) ([]domain.Provider, error)
	Location(ctx context.Context) string
	// OpenHome starts the banner carousel; CloseHome stops it.
	OpenHome()
	CloseHome()
	BannerIndex() int
}
