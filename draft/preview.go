package draft

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"net/http"

	"github.com/disintegration/imaging"
)

const previewMaxSize = 256

// previewDataURL renders attached cover bytes as a data URL for display.
// Decodable images are downscaled to a thumbnail first; anything else is
// embedded as-is with a sniffed content type.
func previewDataURL(data []byte) string {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		contentType := http.DetectContentType(data)
		return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	}

	thumb := imaging.Fit(img, previewMaxSize, previewMaxSize, imaging.Lanczos)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, nil); err != nil {
		contentType := http.DetectContentType(data)
		return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	}
	return fmt.Sprintf("data:image/jpeg;base64,%s", base64.StdEncoding.EncodeToString(buf.Bytes()))
}
