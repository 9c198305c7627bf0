package ports

import (
	"context"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// MediaKind is the asset type returned by a media pick.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaAsset is an opaque picked resource. Cancelled is set when the user
// dismissed the picker.
type MediaAsset struct {
	URI       string
	Kind      MediaKind
	Cancelled bool
}

// DocumentAsset is an opaque picked document.
type DocumentAsset struct {
	URI       string
	Name      string
	Cancelled bool
}

// LocationProvider resolves the device position to a place. It returns
// domain.ErrPermissionDenied when the user refuses access and found=false
// when reverse geocoding yields nothing.
type LocationProvider interface {
	CurrentPlace(ctx context.Context) (place domain.Place, found bool, err error)
}

// MediaPicker opens the camera or the media library.
type MediaPicker interface {
	PickMedia(ctx context.Context, fromCamera bool) (MediaAsset, error)
}

// DocumentPicker opens the file picker.
type DocumentPicker interface {
	PickDocument(ctx context.Context) (DocumentAsset, error)
}

// Recording is an in-flight voice capture.
type Recording interface {
	// Stop finishes the capture and returns the recorded resource URI.
	Stop(ctx context.Context) (string, error)
}

// AudioRecorder starts voice captures. It returns domain.ErrPermissionDenied
// when microphone access is refused.
type AudioRecorder interface {
	StartRecording(ctx context.Context) (Recording, error)
}
