package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

const (
	maxUploadSize = 5 << 20 // 5MB raw upload cap
	avatarMaxSide = 512
)

// UploadUserImage converts an uploaded avatar to a resized webp and pushes
// it to S3 under users/<id>. Returns the public (CloudFront) URL.
func UploadUserImage(userID string, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxUploadSize {
		return "", fmt.Errorf("image larger than 5MB")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("cannot open uploaded file: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("cannot read uploaded file: %w", err)
	}

	mt := mimetype.Detect(raw)
	if !mt.Is("image/jpeg") && !mt.Is("image/png") && !mt.Is("image/webp") {
		return "", fmt.Errorf("unsupported image type %s", mt.String())
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("cannot decode image: %w", err)
	}
	img = imaging.Fit(img, avatarMaxSide, avatarMaxSide, imaging.Lanczos)

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("webp encode failed: %w", err)
	}

	key := GenerateUniqueKey("users/"+userID, fileHeader.Filename+".webp")
	return Upload(key, "image/webp", out.Bytes())
}
