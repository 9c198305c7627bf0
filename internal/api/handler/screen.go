package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/api/metrics"
	"github.com/homeservices/booking-app/internal/api/middleware"
	"github.com/homeservices/booking-app/internal/core/navigation"
)

// Teardown releases the controller behind a screen that left the stack.
type Teardown func(entry navigation.Entry)

// Navigator moves the shared screen stack and tears down the controllers of
// screens that leave it.
type Navigator struct {
	router    *navigation.Router
	teardowns map[string]Teardown
	log       zerolog.Logger
}

func NewNavigator(router *navigation.Router, log zerolog.Logger) *Navigator {
	n := &Navigator{
		router:    router,
		teardowns: make(map[string]Teardown),
		log:       log,
	}
	router.OnLeave(n.leave)
	return n
}

// OnLeave registers fn for entries of route. Register before serving.
func (n *Navigator) OnLeave(route string, fn Teardown) {
	n.teardowns[route] = fn
}

func (n *Navigator) leave(e navigation.Entry) {
	fn, ok := n.teardowns[e.Route]
	if !ok {
		return
	}
	n.log.Debug().Str("route", e.Route).Msg("screen left")
	fn(e)
}

// Go navigates to route. An existing entry of the same route is torn down
// before its params are replaced.
func (n *Navigator) Go(route string, params navigation.Params) (navigation.Entry, error) {
	stack := n.router.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Route == route {
			n.leave(stack[i])
			break
		}
	}
	entry, err := n.router.Navigate(route, params)
	if err != nil {
		return navigation.Entry{}, err
	}
	metrics.ScreenViewsTotal.WithLabelValues(route).Inc()
	return entry, nil
}

func (n *Navigator) Replace(route string, params navigation.Params) (navigation.Entry, error) {
	entry, err := n.router.Replace(route, params)
	if err != nil {
		return navigation.Entry{}, err
	}
	metrics.ScreenViewsTotal.WithLabelValues(route).Inc()
	return entry, nil
}

// Reset leaves every screen and starts over at route.
func (n *Navigator) Reset(route string, params navigation.Params) (navigation.Entry, error) {
	entry, err := n.router.Reset(route, params)
	if err != nil {
		return navigation.Entry{}, err
	}
	metrics.ScreenViewsTotal.WithLabelValues(route).Inc()
	return entry, nil
}

func (n *Navigator) Back() (navigation.Entry, bool) {
	return n.router.GoBack()
}

func (n *Navigator) Current() navigation.Entry {
	return n.router.Current()
}

// Param returns a string param of the current entry.
func (n *Navigator) Param(key string) string {
	v, _ := n.router.Current().Params[key].(string)
	return v
}

func (n *Navigator) respond(c echo.Context, status int, entry navigation.Entry, data any) error {
	return c.JSON(status, screenResponse{
		Screen:    entry,
		CanGoBack: n.router.CanGoBack(),
		Data:      data,
	})
}

// ctxUsername returns the username resolved by the Identify middleware.
func ctxUsername(c echo.Context) string {
	u, _ := c.Get(middleware.CtxUsername).(string)
	return u
}

// entryParam reads a string param of a stack entry.
func entryParam(e navigation.Entry, key string) string {
	v, _ := e.Params[key].(string)
	return v
}
