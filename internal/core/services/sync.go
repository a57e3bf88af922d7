package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
	"github.com/blogoto/blogoto/internal/core/ports/driving"
	"github.com/blogoto/blogoto/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator coordinates the publishing pipeline. It holds no
// mutable state of its own: every invocation builds a fresh Drive
// session from the credential store and works through the durable
// stores, so overlapping webhook deliveries and renewals are safe.
type SyncOrchestrator struct {
	authoriser driven.Authoriser
	credStore  driven.CredentialStore
	postStore  driven.PostStore
	factory    driven.ChangeSourceFactory
	exporter   *Exporter
	metrics    driven.MetricsRecorder

	// callbackAddress receives Drive push notifications.
	callbackAddress string
	// folderID is the Drive folder whose documents are published.
	folderID string

	now func() time.Time
}

// NewSyncOrchestrator creates the orchestrator. metrics may be nil to
// disable recording.
func NewSyncOrchestrator(
	authoriser driven.Authoriser,
	credStore driven.CredentialStore,
	postStore driven.PostStore,
	factory driven.ChangeSourceFactory,
	exporter *Exporter,
	metrics driven.MetricsRecorder,
	callbackAddress string,
	folderID string,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		authoriser:      authoriser,
		credStore:       credStore,
		postStore:       postStore,
		factory:         factory,
		exporter:        exporter,
		metrics:         metrics,
		callbackAddress: callbackAddress,
		folderID:        folderID,
		now:             time.Now,
	}
}

// AuthURL returns the consent screen URL for the /auth redirect.
func (o *SyncOrchestrator) AuthURL(state string) string {
	return o.authoriser.AuthURL(state)
}

// Authorise exchanges a one-time authorisation code for credentials
// and persists them, replacing any previous set.
func (o *SyncOrchestrator) Authorise(ctx context.Context, code string) error {
	if code == "" {
		return fmt.Errorf("%w: authorisation code missing", domain.ErrInvalidInput)
	}

	creds, err := o.authoriser.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}

	if err := o.credStore.Save(ctx, *creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	logger.Info("Authorisation complete, credentials stored")
	return nil
}

// EstablishWatch issues a fresh start cursor, seeds the cursor store,
// and registers a new push-notification channel. Always safe to
// re-run: it only replaces the cursor and creates a new channel;
// prior channels lapse on their own expiry.
func (o *SyncOrchestrator) EstablishWatch(ctx context.Context) error {
	src, cursors, err := o.factory.Create(ctx)
	if err != nil {
		return fmt.Errorf("create drive session: %w", err)
	}
	return o.establishWatch(ctx, src, cursors)
}

func (o *SyncOrchestrator) establishWatch(ctx context.Context, src driven.ChangeSource, cursors driven.CursorStore) error {
	cursor, err := src.StartCursor(ctx)
	if err != nil {
		return fmt.Errorf("issue start cursor: %w", err)
	}

	// Seed the cursor before registering the channel: if the watch
	// call fails the next renewal restarts the whole sequence, and a
	// stored cursor without a channel is harmless.
	if err := cursors.Save(ctx, cursor); err != nil {
		return fmt.Errorf("seed cursor: %w", err)
	}

	sub, err := src.Watch(ctx, cursor, o.callbackAddress)
	if err != nil {
		return fmt.Errorf("register watch channel: %w", err)
	}

	if o.metrics != nil {
		o.metrics.WatchEstablished()
	}
	logger.Info("Watch channel %s established, expires %s", sub.ChannelID, sub.Expiry.Format(time.RFC3339))
	return nil
}

// Drain consumes all pending changes since the stored cursor.
//
// The batch is attempted in full regardless of individual event
// failures; the cursor advances only afterwards, and only if listing
// produced a new one. A crash before the advance means the next
// delivery reprocesses the same batch, which is safe because upserts
// are idempotent per document.
func (o *SyncOrchestrator) Drain(ctx context.Context) error {
	src, cursors, err := o.factory.Create(ctx)
	if err != nil {
		return fmt.Errorf("create drive session: %w", err)
	}

	cursor, err := cursors.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		// No cursor means the watch was never established (or its
		// state was lost). Re-establish and process nothing this
		// delivery; changes arrive again through the new channel.
		logger.Warn("No change cursor stored, re-establishing watch")
		return o.establishWatch(ctx, src, cursors)
	}
	if err != nil {
		if o.metrics != nil {
			o.metrics.DrainFailure()
		}
		return fmt.Errorf("read cursor: %w", err)
	}

	events, nextCursor, err := src.ListChanges(ctx, cursor)
	if err != nil {
		// The stored cursor is left untouched so the next delivery
		// retries from the same point.
		if o.metrics != nil {
			o.metrics.DrainFailure()
		}
		return fmt.Errorf("list changes: %w", err)
	}
	if o.metrics != nil {
		o.metrics.ChangesListed(len(events))
	}
	logger.Debug("Listed %d changes since cursor %q", len(events), cursor)

	for i := range events {
		event := events[i]
		if !o.inScope(&event) {
			continue
		}
		if err := o.publish(ctx, src, &event); err != nil {
			// Per-event isolation: log, count, move on. The event is
			// retried only if the batch itself is replayed.
			if o.metrics != nil {
				o.metrics.PublishFailure()
			}
			logger.Error("Publish %q (%s): %v", event.Name, event.FileID, err)
		}
	}

	if nextCursor != "" {
		if err := cursors.Save(ctx, nextCursor); err != nil {
			return fmt.Errorf("advance cursor: %w", err)
		}
		logger.Debug("Cursor advanced to %q", nextCursor)
	}
	return nil
}

// inScope returns true if a change event should produce a post:
// a live Google Doc inside the configured blog folder.
func (o *SyncOrchestrator) inScope(event *domain.ChangeEvent) bool {
	if event.Removed {
		return false
	}
	if event.MIMEType != domain.MIMETypeGoogleDoc {
		return false
	}
	return event.InFolder(o.folderID)
}

// publish exports, sanitises and upserts one document.
func (o *SyncOrchestrator) publish(ctx context.Context, src driven.ChangeSource, event *domain.ChangeEvent) error {
	html, err := o.exporter.Export(ctx, src, event.FileID)
	if err != nil {
		return err
	}

	post := domain.Post{
		ID:          event.FileID,
		Title:       event.Name,
		Slug:        domain.Slugify(event.Name),
		HTMLContent: html,
		PublishedAt: o.now(),
		Status:      domain.PostStatusPublished,
	}
	if err := o.postStore.Upsert(ctx, post); err != nil {
		return fmt.Errorf("upsert post: %w", err)
	}

	if o.metrics != nil {
		o.metrics.PostPublished()
	}
	logger.Info("Published %q as /%s", post.Title, post.Slug)
	return nil
}
