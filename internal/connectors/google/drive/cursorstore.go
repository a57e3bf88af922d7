package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"

	"github.com/blogoto/blogoto/internal/connectors/google"
	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// cursorFileName is the fixed name of the cursor file in the
// appDataFolder.
const cursorFileName = "startPageToken.json"

// Ensure CursorStore implements the interface.
var _ driven.CursorStore = (*CursorStore)(nil)

// CursorStore keeps the change cursor in the Drive appDataFolder,
// tied to the OAuth identity rather than the post store. Wiping the
// posts for a re-sync leaves the cursor intact, and vice versa.
type CursorStore struct {
	svc     *drive.Service
	limiter *google.RateLimiter
}

// cursorPayload is the JSON body of the cursor file.
type cursorPayload struct {
	StartPageToken string `json:"startPageToken"`
}

// Get retrieves the stored cursor.
func (s *CursorStore) Get(ctx context.Context) (string, error) {
	fileID, err := s.findCursorFile(ctx)
	if err != nil {
		return "", err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := s.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		s.limiter.RecordFromError(err)
		return "", fmt.Errorf("download cursor file: %w", google.WrapError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read cursor file: %w", err)
	}

	var payload cursorPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode cursor file: %w", err)
	}
	if payload.StartPageToken == "" {
		return "", domain.ErrNotFound
	}
	return payload.StartPageToken, nil
}

// Save stores the cursor, replacing any previous value.
func (s *CursorStore) Save(ctx context.Context, cursor string) error {
	payload, err := json.Marshal(cursorPayload{StartPageToken: cursor})
	if err != nil {
		return fmt.Errorf("encode cursor: %w", err)
	}

	fileID, err := s.findCursorFile(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	if fileID != "" {
		_, err = s.svc.Files.Update(fileID, &drive.File{}).
			Media(bytes.NewReader(payload)).
			Context(ctx).
			Do()
		if err != nil {
			s.limiter.RecordFromError(err)
			return fmt.Errorf("update cursor file: %w", google.WrapError(err))
		}
		return nil
	}

	meta := &drive.File{
		Name:     cursorFileName,
		Parents:  []string{"appDataFolder"},
		MimeType: "application/json",
	}
	_, err = s.svc.Files.Create(meta).
		Media(bytes.NewReader(payload)).
		Context(ctx).
		Do()
	if err != nil {
		s.limiter.RecordFromError(err)
		return fmt.Errorf("create cursor file: %w", google.WrapError(err))
	}
	return nil
}

// findCursorFile looks the cursor file up by name in the
// appDataFolder. Returns domain.ErrNotFound with an empty ID when it
// does not exist yet.
func (s *CursorStore) findCursorFile(ctx context.Context) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	// Overlapping first-time saves can leave duplicate cursor files;
	// ordering by modifiedTime makes every reader pick the newest one.
	list, err := s.svc.Files.List().
		Spaces("appDataFolder").
		Q(fmt.Sprintf("name='%s'", cursorFileName)).
		OrderBy("modifiedTime desc").
		Fields("files(id)").
		Context(ctx).
		Do()
	if err != nil {
		s.limiter.RecordFromError(err)
		return "", fmt.Errorf("find cursor file: %w", google.WrapError(err))
	}
	if len(list.Files) == 0 {
		return "", domain.ErrNotFound
	}
	return list.Files[0].Id, nil
}
