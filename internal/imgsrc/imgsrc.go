// Package imgsrc resolves the various ways a run's source image can be
// supplied: a local file, an http(s) URL, generated QR codes, and rendered
// text banners.
package imgsrc

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/0xdowz/auto-draw-bot/internal/config"
)

var urlPattern = regexp.MustCompile(`(?i)^https?://`)

// fetchTimeout bounds how long a URL fetch may take before the run fails.
const fetchTimeout = 10 * time.Second

// Load resolves source into a decoded image. A string matching ^https?://
// is fetched over the network; anything else is treated as a file path.
func Load(ctx context.Context, source string) (image.Image, error) {
	if urlPattern.MatchString(source) {
		return fetchURL(ctx, source)
	}
	return loadFile(source)
}

func loadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &config.ResourceError{Resource: path, Err: err}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &config.ResourceError{Resource: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return img, nil
}

func fetchURL(ctx context.Context, url string) (image.Image, error) {
	client := &http.Client{Timeout: fetchTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &config.ResourceError{Resource: url, Err: err}
	}
	// Some image hosts refuse requests without browser-looking headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "image/webp,image/png,image/jpeg,image/*;q=0.8,*/*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &config.ResourceError{Resource: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &config.ResourceError{Resource: url, Err: fmt.Errorf("status %s", resp.Status)}
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, &config.ResourceError{Resource: url, Err: fmt.Errorf("content type %q is not an image", ct)}
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, &config.ResourceError{Resource: url, Err: fmt.Errorf("decode: %w", err)}
	}
	return img, nil
}
