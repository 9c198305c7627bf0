package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/homeservices/booking-app/internal/api"
	"github.com/homeservices/booking-app/internal/api/handler"
	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/service"
	"github.com/homeservices/booking-app/internal/infrastructure/clock"
	"github.com/homeservices/booking-app/internal/infrastructure/config"
	"github.com/homeservices/booking-app/internal/infrastructure/device"
	"github.com/homeservices/booking-app/internal/infrastructure/queue"
	"github.com/homeservices/booking-app/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Env:    cfg.Env,
	})

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("homeservices stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	kv, closeStore, err := openStore(ctx, cfg, logger.Component("store"))
	if err != nil {
		return err
	}
	defer closeStore()

	// workers outlive the signal so in-flight requests finish during shutdown
	serialCtx, stopSerial := context.WithCancel(context.Background())
	defer stopSerial()
	serial := queue.NewSerializer(cfg.Store.Workers, logger.Component("serializer"))
	serial.Start(serialCtx)

	dev := device.NewStatic(device.Config{
		LocationGranted:   cfg.Device.LocationGranted,
		MicrophoneGranted: cfg.Device.MicrophoneGranted,
		Place: domain.Place{
			City:    cfg.Device.City,
			Region:  cfg.Device.Region,
			Country: cfg.Device.Country,
		},
		MediaDir: cfg.Device.MediaDir,
	})
	clk := clock.System{}

	session := service.NewSessionService(kv, logger.Component("session"))
	employees := service.NewEmployeeService(kv, logger.Component("employee"))
	home := service.NewHomeService(dev, clk, service.HomeConfig{
		CarouselInterval: cfg.Screens.CarouselInterval,
	}, logger.Component("home"))
	bookings := service.NewBookingService(kv, serial, clk, service.BookingConfig{
		TrackingInterval: cfg.Screens.TrackingInterval,
		CancelMode:       domain.ParseCancelMode(cfg.Screens.BookingCancelMode),
	}, logger.Component("booking"))
	chat := service.NewChatService(clk, service.ChatDevices{
		Media:     dev,
		Documents: dev,
		Recorder:  dev,
	}, service.ChatConfig{ReplyDelay: cfg.Screens.ChatReplyDelay}, logger.Component("chat"))
	profile := service.NewProfileService(kv, serial, dev, logger.Component("profile"))

	initial := session.InitialRoute(ctx)
	var params navigation.Params
	if initial == navigation.RouteHome {
		params = navigation.Params{"username": session.CheckSession(ctx).Username}
	}

	e, err := api.NewRouter(api.Deps{
		Session:    session,
		Employees:  employees,
		Home:       home,
		Bookings:   bookings,
		Chat:       chat,
		Profile:    profile,
		Navigation: navigation.New(initial, params),
		Health:     map[string]handler.Pinger{cfg.Store.Driver: kv},
	}, logger.Component("http"))
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Str("store", cfg.Store.Driver).
			Str("initial_route", initial).
			Msg("starting screen shell")
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	home.CloseHome()
	return e.Shutdown(shutdownCtx)
}
