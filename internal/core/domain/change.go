package domain

import "time"

// MIMETypeGoogleDoc identifies Google Docs, the only document kind
// the pipeline publishes.
const MIMETypeGoogleDoc = "application/vnd.google-apps.document"

// ChangeEvent describes one modified Drive resource, as reported by
// the Changes API between two cursors. Events are transient: each is
// either dispatched to produce a Post or discarded as out of scope.
type ChangeEvent struct {
	// FileID is the Drive file ID of the changed resource.
	FileID string
	// Name is the file name at change time.
	Name string
	// MIMEType is the Drive MIME type of the resource.
	MIMEType string
	// ParentIDs are the IDs of the folders containing the resource.
	ParentIDs []string
	// Removed is true if the resource was deleted or unshared.
	// File metadata is absent for removed resources.
	Removed bool
}

// InFolder returns true if the resource lives in the given folder.
func (e *ChangeEvent) InFolder(folderID string) bool {
	for _, id := range e.ParentIDs {
		if id == folderID {
			return true
		}
	}
	return false
}

// Subscription describes an active push-notification channel with
// Drive. Channels expire upstream (commonly within 24h) and are
// recreated wholesale on renewal; an expired channel is not reusable.
type Subscription struct {
	// ChannelID is the caller-chosen unique channel identity.
	ChannelID string
	// ResourceID is the upstream identity of the watched resource.
	ResourceID string
	// Expiry is when the channel stops delivering notifications.
	Expiry time.Time
}
