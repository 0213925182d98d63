package splitentity

import "strings"

const audioMediaTypePrefix = "audio/"

// UploadedFile is handed to the split client for the duration of one request
// and is not retained afterwards
type UploadedFile struct {
	Name      string
	MediaType string
	Content   []byte
}

func (u UploadedFile) IsAudio() bool {
	return strings.HasPrefix(u.MediaType, audioMediaTypePrefix)
}

// SplitResult holds paths relative to the split backend's origin,
// not full URLs
type SplitResult struct {
	Vocals  string `json:"vocals"`
	Karaoke string `json:"karaoke"`
}
