package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		kind        MediaKind
		wantErr     error
	}{
		{
			name:        "Valid image",
			filename:    "photo.jpg",
			contentType: "image/jpeg",
			size:        1 << 20,
			kind:        MediaImage,
		},
		{
			name:        "Image too large",
			filename:    "photo.png",
			contentType: "image/png",
			size:        MaxImageSize + 1,
			kind:        MediaImage,
			wantErr:     ErrFileTooLarge,
		},
		{
			name:        "Bmp image",
			filename:    "photo.bmp",
			contentType: "image/bmp",
			size:        100,
			kind:        MediaImage,
		},
		{
			name:        "Tiff image",
			filename:    "scan.tiff",
			contentType: "image/tiff",
			size:        100,
			kind:        MediaImage,
		},
		{
			name:        "Allowed type rescues odd extension",
			filename:    "photo.download",
			contentType: "image/jpeg",
			size:        100,
			kind:        MediaImage,
		},
		{
			name:        "Allowed extension rescues unknown type",
			filename:    "photo.jpg",
			contentType: "binary/unknown",
			size:        100,
			kind:        MediaImage,
		},
		{
			name:        "Unknown type and extension",
			filename:    "report.pdf",
			contentType: "application/pdf",
			size:        100,
			kind:        MediaImage,
			wantErr:     ErrInvalidFileType,
		},
		{
			name:        "Valid video",
			filename:    "clip.mp4",
			contentType: "video/mp4",
			size:        100 << 20,
			kind:        MediaVideo,
		},
		{
			name:        "Avi video",
			filename:    "clip.avi",
			contentType: "video/avi",
			size:        100 << 20,
			kind:        MediaVideo,
		},
		{
			name:        "Mkv video declared as octet-stream",
			filename:    "clip.mkv",
			contentType: "application/octet-stream",
			size:        100 << 20,
			kind:        MediaVideo,
		},
		{
			name:        "Video too large",
			filename:    "clip.mp4",
			contentType: "video/mp4",
			size:        MaxVideoSize + 1,
			kind:        MediaVideo,
			wantErr:     ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.filename, tt.contentType, tt.size, tt.kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, MediaVideo, Kind("clip.mp4", "video/mp4"))
	assert.Equal(t, MediaImage, Kind("photo.png", "image/png"))
	assert.Equal(t, MediaVideo, Kind("clip.mkv", "application/octet-stream"))
	assert.Equal(t, MediaVideo, Kind("clip.avi", ""))
	assert.Equal(t, MediaImage, Kind("photo.bin", ""))
}

func TestKeyFromURL(t *testing.T) {
	key, err := KeyFromURL("https://media.example.com/uploads/0b2e4a.png")
	assert.NoError(t, err)
	assert.Equal(t, "uploads/0b2e4a.png", key)

	key, err = KeyFromURL("https://media.example.com/cdn/v1/uploads/file.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "uploads/file.jpg", key)

	_, err = KeyFromURL("https://media.example.com/file.jpg")
	assert.ErrorIs(t, err, ErrInvalidFileURL)
}
