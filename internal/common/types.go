package common

import "strings"

type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

// Ordinal maps a status to its position in the sent -> delivered -> read
// progression. Unknown statuses rank below sent so they never win an update.
func (s MessageStatus) Ordinal() int {
	switch s {
	case StatusSent:
		return 0
	case StatusDelivered:
		return 1
	case StatusRead:
		return 2
	}
	return -1
}

func (s MessageStatus) IsValid() bool {
	return s.Ordinal() >= 0
}

type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeAudio ContentType = "audio"
	ContentTypeVideo ContentType = "video"
)

// String returns the string representation
func (ct ContentType) String() string {
	return string(ct)
}

// IsValid checks if the content type is valid
func (ct ContentType) IsValid() bool {
	return ct == ContentTypeText || ct == ContentTypeAudio || ct == ContentTypeVideo
}

type MediaFileType string

const (
	MediaFileTypeImage MediaFileType = "image"
	MediaFileTypeAudio MediaFileType = "audio"
	MediaFileTypeVideo MediaFileType = "video"
)

func (mft MediaFileType) String() string {
	return string(mft)
}

func DetectFileType(mimeType string) MediaFileType {
	lowerMimeType := strings.ToLower(mimeType)
	if strings.HasPrefix(lowerMimeType, "audio/") {
		return MediaFileTypeAudio
	}
	if strings.HasPrefix(lowerMimeType, "video/") {
		return MediaFileTypeVideo
	}
	return MediaFileTypeImage // Default fallback
}
