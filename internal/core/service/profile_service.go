package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
	"github.com/homeservices/booking-app/internal/core/store"
)

// ProfileService persists the user profile after every change.
type ProfileService struct {
	store  *store.Adapter
	serial ports.KeySerializer
	media  ports.MediaPicker
	log    zerolog.Logger
}

func NewProfileService(kv ports.KVStore, serial ports.KeySerializer, media ports.MediaPicker, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		store:  store.NewAdapter(kv),
		serial: serial,
		media:  media,
		log:    log,
	}
}

// Load returns the stored profile. A missing or unreadable record yields the
// empty profile.
func (s *ProfileService) Load(ctx context.Context) domain.Profile {
	var p domain.Profile
	found, err := s.store.GetJSON(ctx, store.KeyUserProfile, &p)
	if err != nil {
		s.log.Error().Err(err).Msg("load profile failed")
		return domain.Profile{}
	}
	if !found {
		return domain.Profile{}
	}
	return p
}

func (s *ProfileService) Update(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	var updated domain.Profile
	err := s.serial.Do(ctx, store.KeyUserProfile, func(ctx context.Context) error {
		var current domain.Profile
		if _, err := s.store.GetJSON(ctx, store.KeyUserProfile, &current); err != nil {
			return err
		}
		next := current.Apply(patch)
		if err := s.store.SetJSON(ctx, store.KeyUserProfile, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("save profile failed")
		return domain.Profile{}, err
	}
	s.log.Debug().Int("completion", updated.Completion()).Msg("profile saved")
	return updated, nil
}

// PickPicture sets the profile picture from the camera or the library. A
// cancelled pick returns the current profile unchanged.
func (s *ProfileService) PickPicture(ctx context.Context, fromCamera bool) (domain.Profile, error) {
	asset, err := s.media.PickMedia(ctx, fromCamera)
	if err != nil {
		s.log.Warn().Err(err).Bool("camera", fromCamera).Msg("profile picture pick failed")
		return domain.Profile{}, err
	}
	if asset.Cancelled || asset.URI == "" {
		return s.Load(ctx), nil
	}
	uri := asset.URI
	return s.Update(ctx, domain.ProfilePatch{ProfilePic: &uri})
}
