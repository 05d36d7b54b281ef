package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // image.DecodeConfigにGIFデコーダを登録
	_ "image/jpeg" // image.DecodeConfigにJPEGデコーダを登録
	_ "image/png"  // image.DecodeConfigにPNGデコーダを登録

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
const MaxImageSize = 10 * 1024 * 1024

// allowedImageTypes は受け付ける画像のMIMEタイプです。
var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var (
	errEmptyImage       = errors.New("image data is empty")
	errImageTooLarge    = fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	errUnsupportedImage = errors.New("unsupported image type")
)

// ValidateImage は画像の内容からMIMEタイプを判定し、デコード可能かを検証します。
// WebPは標準ライブラリにデコーダがないため、MIME判定のみ行います。
func ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errEmptyImage
	}
	if len(data) > MaxImageSize {
		return "", errImageTooLarge
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return "", fmt.Errorf("%w: %s", errUnsupportedImage, mt.String())
	}
	if mt.Is("image/webp") {
		return mt.String(), nil
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return mt.String(), nil
}
