package common

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/nfnt/resize"
	"github.com/pngfun/backend/pkg/crypto"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/storage"
	"github.com/pngfun/backend/pkg/xcontext"
)

const photoMime = "image/jpeg"

// DecodePhotoData accepts a raw base64 string or a data URL
// (data:image/png;base64,...) and decodes the image inside. Images declaring
// a width or height above maxDimension are rejected before their pixels are
// allocated. A non-positive maxDimension disables the check.
func DecodePhotoData(data string, maxDimension int) (image.Image, error) {
	if rest, found := strings.CutPrefix(data, "data:"); found {
		header, payload, ok := strings.Cut(rest, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, fmt.Errorf("unsupported data url")
		}
		data = payload
	}

	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, err
	}

	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	if maxDimension > 0 && (imgCfg.Width > maxDimension || imgCfg.Height > maxDimension) {
		return nil, fmt.Errorf("image of %dx%d exceeds %d pixels", imgCfg.Width, imgCfg.Height, maxDimension)
	}

	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	return img, nil
}

// ProcessPhoto decodes the photo, downscales it to the configured width,
// re-encodes it as JPEG and uploads it under the user's folder.
func ProcessPhoto(
	ctx context.Context, fileStorage storage.Storage, userID, data string,
) (*storage.UploadResponse, error) {
	cfg := xcontext.Configs(ctx).File
	if cfg.MaxSize > 0 && len(data) > base64.StdEncoding.EncodedLen(cfg.MaxSize)+64 {
		return nil, errorx.New(errorx.BadRequest, "Photo is too large")
	}

	img, err := DecodePhotoData(data, cfg.MaxDimension)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode photo data: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid photo data")
	}

	if cfg.MaxWidth > 0 && uint(img.Bounds().Dx()) > cfg.MaxWidth {
		img = resize.Resize(cfg.MaxWidth, 0, img, resize.Lanczos3)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode photo: %v", err)
		return nil, errorx.Unknown
	}

	resp, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.Bucket,
		FileName: PhotoFileName(userID, time.Now()),
		Mime:     photoMime,
		Data:     buf.Bytes(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload photo: %v", err)
		return nil, errorx.Unknown
	}

	return resp, nil
}

func PhotoFileName(userID string, now time.Time) string {
	return fmt.Sprintf("%s/%d-%s.jpg", userID, now.UnixMilli(), crypto.GenerateRandomAlphabet(6))
}
