package domain

// UploadStatus represents the processing lifecycle of an upload.
// Any status can transition back through reprocessing; there is no
// terminal state.
type UploadStatus string

const (
	UploadStatusNew       UploadStatus = "new"
	UploadStatusProcessed UploadStatus = "processed"
	UploadStatusFailed    UploadStatus = "failed"
)

// ValidUploadStatuses enumerates the accepted status values.
var ValidUploadStatuses = map[UploadStatus]bool{
	UploadStatusNew:       true,
	UploadStatusProcessed: true,
	UploadStatusFailed:    true,
}
