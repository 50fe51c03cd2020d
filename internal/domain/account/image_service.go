package account

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"

	"gitlab.com/onboardly/accounts-backend/pkg/errorx"
	"gitlab.com/onboardly/accounts-backend/pkg/i18nx"
)

const (
	MinImageSize = 100             // 100 bytes
	MaxImageSize = 5 * 1024 * 1024 // 5 MB
)

var (
	ErrInvalidFileType = validation.NewError(i18nx.ValidationInvalidFileType, i18nx.MsgValidationInvalidFileTypeOther)
	ErrImageTooLarge   = validation.NewError(i18nx.ValidationFileSizeTooLarge, i18nx.MsgValidationFileSizeTooLargeOther).
				SetParams(map[string]any{i18nx.ArgThreshold: MaxImageSize / (1024 * 1024), i18nx.ArgUnit: "MB"})
	ErrImageTooSmall = validation.NewError(i18nx.ValidationFileSizeTooSmall, i18nx.MsgValidationFileSizeTooSmallOther).
				SetParams(map[string]any{i18nx.ArgThreshold: MinImageSize, i18nx.ArgUnit: "bytes"})
)

// ImageService resolves uploaded profile images to storage keys and public
// URLs. It performs no I/O itself.
type ImageService struct {
	baseURL string
}

func NewImageService(baseURL string) *ImageService {
	return &ImageService{
		baseURL: baseURL,
	}
}

func (s *ImageService) ValidateImageFile(contentType string, size int64) error {
	const op = "account.ImageService.ValidateImageFile"
	allowedContentTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	if !allowedContentTypes[contentType] {
		err := ErrInvalidFileType.SetParams(map[string]any{i18nx.ArgList: "image/jpeg, image/png, image/gif, image/webp"})
		return errorx.Wrap(err, op)
	}

	if size > MaxImageSize {
		return errorx.Wrap(ErrImageTooLarge, op)
	}
	if size < MinImageSize {
		return errorx.Wrap(ErrImageTooSmall, op)
	}

	return nil
}

// GenerateKey builds a unique storage key for an uploaded image, keeping the
// original file name's extension.
func (s *ImageService) GenerateKey(filename string) string {
	return fmt.Sprintf("profiles/%d/%s%s", timestampMillis(), uuid.NewString(), path.Ext(filename))
}

func (s *ImageService) BuildImageURL(key string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}

// KeyFromURL reverses BuildImageURL. It reports false for the placeholder and
// for URLs outside this service's base, which must not be deleted.
func (s *ImageService) KeyFromURL(url string) (string, bool) {
	if url == "" || url == PlaceholderImageURL {
		return "", false
	}
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func timestampMillis() int64 {
	return time.Now().UnixMilli()
}
