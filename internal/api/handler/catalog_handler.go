package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/ports"
)

// CatalogHandler serves the home screen, the service catalog and the
// service detail screen.
type CatalogHandler struct {
	home    ports.HomeService
	session ports.SessionService
	nav     *Navigator
}

func NewCatalogHandler(home ports.HomeService, session ports.SessionService, nav *Navigator) *CatalogHandler {
	return &CatalogHandler{home: home, session: session, nav: nav}
}

// Home renders the home screen and keeps its banner carousel running.
func (h *CatalogHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	h.home.OpenHome()

	fromRoute := ""
	if cur := h.nav.Current(); cur.Route == navigation.RouteHome {
		fromRoute = entryParam(cur, "username")
	}

	return c.JSON(http.StatusOK, homeResponse{
		Username:    h.session.ResolveUsername(ctx, fromRoute),
		Location:    h.home.Location(ctx),
		BannerIndex: h.home.BannerIndex(),
		Services:    h.home.Services(c.QueryParam("q")),
	})
}

func (h *CatalogHandler) Banner(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]int{"index": h.home.BannerIndex()})
}

func (h *CatalogHandler) Services(c echo.Context) error {
	return c.JSON(http.StatusOK, h.home.Services(c.QueryParam("q")))
}

// OpenService navigates to the detail screen of a service.
func (h *CatalogHandler) OpenService(c echo.Context) error {
	svc, providers, err := h.serviceWithProviders(c.Param("id"))
	if err != nil {
		return err
	}
	entry, err := h.nav.Go(navigation.RouteServiceDetail, navigation.Params{
		"serviceId":   svc.ID,
		"serviceName": svc.Name,
	})
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusOK, entry, serviceDetailResponse{Service: svc, Providers: providers})
}

// OpenProvider navigates to a provider's profile screen.
func (h *CatalogHandler) OpenProvider(c echo.Context) error {
	provider, err := h.provider(c.Param("id"), c.Param("providerId"))
	if err != nil {
		return err
	}
	entry, err := h.nav.Go(navigation.RouteProfileDetail, navigation.Params{
		"serviceId":  c.Param("id"),
		"providerId": provider.ID,
	})
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusOK, entry, providerView{Provider: provider, CallURI: domain.CallURI(provider.Phone)})
}

func (h *CatalogHandler) serviceWithProviders(id string) (domain.Service, []providerView, error) {
	svc, ok := h.home.Service(id)
	if !ok {
		return domain.Service{}, nil, domain.ErrServiceNotFound
	}
	list, err := h.home.Providers(id)
	if err != nil {
		return domain.Service{}, nil, err
	}
	views := make([]providerView, 0, len(list))
	for _, p := range list {
		views = append(views, providerView{Provider: p, CallURI: domain.CallURI(p.Phone)})
	}
	return svc, views, nil
}

func (h *CatalogHandler) provider(serviceID, providerID string) (domain.Provider, error) {
	id, err := strconv.Atoi(providerID)
	if err != nil {
		return domain.Provider{}, echo.NewHTTPError(http.StatusBadRequest, "invalid provider id")
	}
	list, err := h.home.Providers(serviceID)
	if err != nil {
		return domain.Provider{}, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Provider{}, echo.NewHTTPError(http.StatusNotFound, "provider not found")
}
