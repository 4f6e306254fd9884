package service

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/MohdMoinuddin-mma/OlymPIX/pkg/model"
	"github.com/gabriel-vasile/mimetype"
)

// EncodeMedia sniffs the upload's content type and base64-encodes it.
// Anything other than an image or a video is rejected.
func EncodeMedia(data []byte) (model.InlineMedia, error) {
	if len(data) == 0 {
		return model.InlineMedia{}, fmt.Errorf("%w: upload is empty", ErrUnsupportedMedia)
	}

	mtype := mimetype.Detect(data)
	mime := mtype.String()
	// Detect may append parameters such as "; charset=utf-8"
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") && !strings.HasPrefix(mime, "video/") {
		return model.InlineMedia{}, fmt.Errorf("%w: got %s", ErrUnsupportedMedia, mime)
	}

	return model.InlineMedia{
		MimeType:   mime,
		Base64Data: base64.StdEncoding.EncodeToString(data),
	}, nil
}
