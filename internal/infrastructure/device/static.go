// Package device provides the capability shims used when the core runs
// behind the loopback shell. The view performs the native pick or
// recording and hands the result over with the request; the shims read it
// back from the context.
package device

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
)

// Config describes the simulated device.
type Config struct {
	LocationGranted   bool
	MicrophoneGranted bool
	Place             domain.Place
	MediaDir          string
}

type mediaKey struct{}
type documentKey struct{}
type recordingKey struct{}

// WithMediaAsset attaches the asset the view picked. A context without one
// is treated as a cancelled pick.
func WithMediaAsset(ctx context.Context, asset ports.MediaAsset) context.Context {
	return context.WithValue(ctx, mediaKey{}, asset)
}

func WithDocumentAsset(ctx context.Context, asset ports.DocumentAsset) context.Context {
	return context.WithValue(ctx, documentKey{}, asset)
}

// WithRecordingURI attaches the file the view recorded to a stop request.
func WithRecordingURI(ctx context.Context, uri string) context.Context {
	return context.WithValue(ctx, recordingKey{}, uri)
}

// Static implements every device port from Config and request hand-offs.
type Static struct {
	cfg Config
}

func NewStatic(cfg Config) *Static {
	return &Static{cfg: cfg}
}

func (s *Static) CurrentPlace(context.Context) (domain.Place, bool, error) {
	if !s.cfg.LocationGranted {
		return domain.Place{}, false, domain.ErrPermissionDenied
	}
	if s.cfg.Place == (domain.Place{}) {
		return domain.Place{}, false, nil
	}
	return s.cfg.Place, true, nil
}

func (s *Static) PickMedia(ctx context.Context, _ bool) (ports.MediaAsset, error) {
	asset, ok := ctx.Value(mediaKey{}).(ports.MediaAsset)
	if !ok || asset.URI == "" {
		return ports.MediaAsset{Cancelled: true}, nil
	}
	if asset.Kind == "" {
		asset.Kind = kindFromURI(asset.URI)
	}
	return asset, nil
}

func (s *Static) PickDocument(ctx context.Context) (ports.DocumentAsset, error) {
	asset, ok := ctx.Value(documentKey{}).(ports.DocumentAsset)
	if !ok || asset.URI == "" {
		return ports.DocumentAsset{Cancelled: true}, nil
	}
	if asset.Name == "" {
		asset.Name = filepath.Base(asset.URI)
	}
	return asset, nil
}

func (s *Static) StartRecording(context.Context) (ports.Recording, error) {
	if !s.cfg.MicrophoneGranted {
		return nil, domain.ErrPermissionDenied
	}
	return &recording{dir: s.cfg.MediaDir, id: uuid.NewString()}, nil
}

type recording struct {
	dir string
	id  string
}

// Stop returns the URI handed over by the view, or a file under the media
// directory named after the recording.
func (r *recording) Stop(ctx context.Context) (string, error) {
	if uri, ok := ctx.Value(recordingKey{}).(string); ok && uri != "" {
		return uri, nil
	}
	return fmt.Sprintf("file://%s", filepath.Join(r.dir, "voice-"+r.id+".m4a")), nil
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".heic": true,
}

func kindFromURI(uri string) ports.MediaKind {
	if imageExts[strings.ToLower(filepath.Ext(uri))] {
		return ports.MediaImage
	}
	return ports.MediaVideo
}
