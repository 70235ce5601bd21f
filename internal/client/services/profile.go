package services

import (
	"context"

	"github.com/accion2025/buencuidar/internal/client/imagex"
	"github.com/accion2025/buencuidar/internal/client/uploads"
	"github.com/accion2025/buencuidar/internal/logging"
)

// ProfileService changes the user's avatar.
type ProfileService struct {
	runner      Runner
	log         logging.Logger
	constrained bool
}

// NewProfileService builds the service. constrained marks a low-powered
// device; avatars are then downscaled before upload.
func NewProfileService(runner Runner, constrained bool, log logging.Logger) *ProfileService {
	return &ProfileService{runner: runner, constrained: constrained, log: log}
}

// UpdateAvatar preprocesses the image and uploads it as the owner's avatar.
// Preprocessing never blocks the upload: anything that cannot be downscaled
// goes up as-is.
func (s *ProfileService) UpdateAvatar(ctx context.Context, ownerID, fileName, contentType string, data []byte, cb uploads.Callbacks) uploads.Result {
	processed, resized := imagex.Downscale(ctx, data, imagex.Options{ConstrainedDevice: s.constrained})
	if resized {
		s.log.Debug(ctx, "avatar downscaled", "from", len(data), "to", len(processed))
		contentType = "image/jpeg"
		fileName = "avatar.jpg"
	}

	task := uploads.NewAvatarTask(ownerID, fileName, contentType, processed)
	return s.runner.Run(ctx, task, cb)
}
