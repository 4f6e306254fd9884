package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0}
	mp4Header = []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm', 0, 0, 2, 0, 'i', 's', 'o', 'm', 'i', 's', 'o', '2'}
)

func TestEncodeMedia(t *testing.T) {
	t.Run("image", func(t *testing.T) {
		media, err := EncodeMedia(pngHeader)
		require.NoError(t, err)
		assert.Equal(t, "image/png", media.MimeType)
		assert.False(t, media.IsVideo())

		decoded, err := base64.StdEncoding.DecodeString(media.Base64Data)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, decoded)
	})

	t.Run("video", func(t *testing.T) {
		media, err := EncodeMedia(mp4Header)
		require.NoError(t, err)
		assert.True(t, media.IsVideo())
	})

	t.Run("text is rejected", func(t *testing.T) {
		_, err := EncodeMedia([]byte("just some notes about my swim"))
		assert.ErrorIs(t, err, ErrUnsupportedMedia)
	})

	t.Run("empty upload is rejected", func(t *testing.T) {
		_, err := EncodeMedia(nil)
		assert.ErrorIs(t, err, ErrUnsupportedMedia)
	})
}
