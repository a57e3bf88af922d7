// Package drive implements the change source over the Google Drive
// Changes API: start cursors, watch channels, change listing with
// internal pagination draining, and HTML document export. The change
// cursor itself is kept in the Drive appDataFolder, out of band of the
// post store.
package drive

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/blogoto/blogoto/internal/connectors/google"
	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
	"github.com/blogoto/blogoto/internal/logger"
)

// ExportMimeHTML is the export format for published documents.
const ExportMimeHTML = "text/html"

// MaxExportSize caps exported content at 10MB. Docs exports inline
// images as data URIs, so they run large.
const MaxExportSize = 10 * 1024 * 1024

// changeFields selects the change metadata the filter needs.
const changeFields = "nextPageToken, newStartPageToken, changes(fileId, removed, file(name, mimeType, parents, trashed))"

// Ensure Session implements the interface.
var _ driven.ChangeSource = (*Session)(nil)

// Session is one authenticated Drive session. Sessions are built per
// invocation by the Factory and never outlive it.
type Session struct {
	svc     *drive.Service
	limiter *google.RateLimiter
}

// StartCursor asks Drive for a fresh "changes from now on" page token.
func (s *Session) StartCursor(ctx context.Context) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := s.svc.Changes.GetStartPageToken().Context(ctx).Do()
	if err != nil {
		s.limiter.RecordFromError(err)
		return "", fmt.Errorf("get start page token: %w", google.WrapError(err))
	}
	return resp.StartPageToken, nil
}

// Watch registers a new push-notification channel for changes at or
// after cursor. The channel identity is always fresh; expired or
// superseded channels are never reused and lapse upstream on their
// own expiry.
func (s *Session) Watch(ctx context.Context, cursor, address string) (*domain.Subscription, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	channel := &drive.Channel{
		Id:      "blog-" + uuid.New().String(),
		Type:    "web_hook",
		Address: address,
	}
	resp, err := s.svc.Changes.Watch(cursor, channel).Context(ctx).Do()
	if err != nil {
		s.limiter.RecordFromError(err)
		return nil, fmt.Errorf("register watch channel: %w", google.WrapError(err))
	}

	sub := &domain.Subscription{
		ChannelID:  resp.Id,
		ResourceID: resp.ResourceId,
	}
	if resp.Expiration > 0 {
		sub.Expiry = time.UnixMilli(resp.Expiration)
	}
	return sub, nil
}

// ListChanges returns all change events since cursor and the final
// next cursor. All pages are drained here: the caller never sees an
// intermediate page token, so a partially listed batch can never
// advance the stored cursor.
func (s *Session) ListChanges(ctx context.Context, cursor string) ([]domain.ChangeEvent, string, error) {
	var events []domain.ChangeEvent
	pageToken := cursor

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, "", err
		}

		resp, err := s.svc.Changes.List(pageToken).
			Spaces("drive").
			Fields(googleapi.Field(changeFields)).
			Context(ctx).
			Do()
		if err != nil {
			s.limiter.RecordFromError(err)
			return nil, "", fmt.Errorf("list changes: %w", google.WrapError(err))
		}

		for _, change := range resp.Changes {
			events = append(events, toChangeEvent(change))
		}

		if resp.NextPageToken != "" {
			pageToken = resp.NextPageToken
			continue
		}
		logger.Debug("Drained %d changes, new start token %q", len(events), resp.NewStartPageToken)
		return events, resp.NewStartPageToken, nil
	}
}

// ExportDocument returns the HTML rendering of a Google Doc.
func (s *Session) ExportDocument(ctx context.Context, fileID string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := s.svc.Files.Export(fileID, ExportMimeHTML).Context(ctx).Download()
	if err != nil {
		s.limiter.RecordFromError(err)
		return "", fmt.Errorf("export %s: %w", fileID, google.WrapError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxExportSize))
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	return string(data), nil
}

// toChangeEvent maps a Drive change to the domain event. Removed and
// trashed resources carry no usable metadata and are marked Removed so
// the orchestrator discards them.
func toChangeEvent(change *drive.Change) domain.ChangeEvent {
	event := domain.ChangeEvent{
		FileID:  change.FileId,
		Removed: change.Removed,
	}
	if change.File != nil {
		event.Name = change.File.Name
		event.MIMEType = change.File.MimeType
		event.ParentIDs = change.File.Parents
		if change.File.Trashed {
			event.Removed = true
		}
	}
	return event
}
