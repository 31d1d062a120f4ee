// Package covers fetches item cover images and computes BlurHash
// placeholders for them. Covers stay hosted at their external URLs; only
// the placeholder hash is stored on the item.
package covers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// maxCoverSize limits download size to prevent memory exhaustion.
	maxCoverSize = 10 * 1024 * 1024 // 10MB

	// fetchTimeout is the maximum time for a cover fetch.
	fetchTimeout = 30 * time.Second

	// blurHashSize is the thumbnail edge used for BlurHash computation.
	// BlurHash is a low-resolution placeholder, so a small thumbnail
	// produces nearly identical results in a fraction of the time.
	blurHashSize = 64
)

// Hasher fetches cover images and computes their BlurHash.
type Hasher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHasher creates a cover hasher.
func NewHasher(logger *slog.Logger) *Hasher {
	return &Hasher{
		httpClient: &http.Client{Timeout: fetchTimeout},
		logger:     logger,
	}
}

// HashURL downloads the cover at url and returns its BlurHash. Failures
// return an error; callers treat the hash as optional and keep the item
// without one.
func (h *Hasher) HashURL(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", errors.New("empty cover URL")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch cover: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverSize))
	if err != nil {
		return "", fmt.Errorf("read cover: %w", err)
	}

	return HashImage(data)
}

// HashImage computes the BlurHash of an encoded image (JPEG, PNG, GIF,
// or WebP). Uses 4x3 components, a good balance of size and detail for
// portrait covers.
func HashImage(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	hash, err := blurhash.Encode(4, 3, resizeForBlurHash(img))
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}
	return hash, nil
}

// resizeForBlurHash creates a small thumbnail via nearest-neighbor
// scaling, which is fast and sufficient for BlurHash.
func resizeForBlurHash(img image.Image) image.Image {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	if srcWidth <= blurHashSize && srcHeight <= blurHashSize {
		return img
	}

	var dstWidth, dstHeight int
	if srcWidth > srcHeight {
		dstWidth = blurHashSize
		dstHeight = (srcHeight * blurHashSize) / srcWidth
		if dstHeight < 1 {
			dstHeight = 1
		}
	} else {
		dstHeight = blurHashSize
		dstWidth = (srcWidth * blurHashSize) / srcHeight
		if dstWidth < 1 {
			dstWidth = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for y := 0; y < dstHeight; y++ {
		for x := 0; x < dstWidth; x++ {
			srcX := int(float64(x) * xRatio)
			srcY := int(float64(y) * yRatio)
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}

	return dst
}
