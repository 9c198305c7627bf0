package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/service"
	"github.com/homeservices/booking-app/internal/infrastructure/clock"
	"github.com/homeservices/booking-app/internal/infrastructure/db/memory"
	"github.com/homeservices/booking-app/internal/infrastructure/device"
	"github.com/homeservices/booking-app/internal/infrastructure/queue"
)

// fixture wires the real services over an in-memory store. Timers are long
// enough that no tick fires during a test.
type fixture struct {
	e         *echo.Echo
	kv        *memory.KVStore
	nav       *Navigator
	session   *service.SessionService
	employees *service.EmployeeService
	home      *service.HomeService
	bookings  *service.BookingService
	chat      *service.ChatService
	profile   *service.ProfileService
}

func newFixture(t *testing.T, initial string) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := zerolog.Nop()
	kv := memory.NewKVStore()
	serial := queue.NewSerializer(2, log)
	serial.Start(ctx)

	dev := device.NewStatic(device.Config{
		LocationGranted:   true,
		MicrophoneGranted: true,
		Place:             domain.Place{City: "Austin", Region: "TX", Country: "USA"},
		MediaDir:          "/tmp/media",
	})
	clk := clock.System{}

	e := echo.New()
	e.Validator = NewValidator()

	f := &fixture{
		e:         e,
		kv:        kv,
		nav:       NewNavigator(navigation.New(initial, nil), log),
		session:   service.NewSessionService(kv, log),
		employees: service.NewEmployeeService(kv, log),
		home:      service.NewHomeService(dev, clk, service.HomeConfig{CarouselInterval: time.Hour}, log),
		bookings:  service.NewBookingService(kv, serial, clk, service.BookingConfig{TrackingInterval: time.Hour}, log),
		chat: service.NewChatService(clk, service.ChatDevices{Media: dev, Documents: dev, Recorder: dev},
			service.ChatConfig{ReplyDelay: time.Hour}, log),
		profile: service.NewProfileService(kv, serial, dev, log),
	}
	f.nav.OnLeave(navigation.RouteTracking, func(e navigation.Entry) {
		_ = f.bookings.StopTracking(entryParam(e, "trackingId"))
	})
	f.nav.OnLeave(navigation.RouteChat, func(e navigation.Entry) {
		_ = f.chat.Close(entryParam(e, "conversationId"))
	})
	f.nav.OnLeave(navigation.RouteHome, func(navigation.Entry) {
		f.home.CloseHome()
	})
	t.Cleanup(func() { _, _ = f.nav.Reset(navigation.RouteStart, nil) })
	return f
}

// call runs h against a JSON request. params are name, value pairs.
func (f *fixture) call(h echo.HandlerFunc, method, target, body string, params ...string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return rec, h(c)
}
