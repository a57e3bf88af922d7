package services

import (
	"context"
	"fmt"

	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// Exporter turns a Drive document into publishable HTML: raw export
// followed by sanitisation. Sanitisation never fails; any error comes
// from the export step.
type Exporter struct {
	sanitiser driven.Sanitiser
}

// NewExporter creates a content exporter.
func NewExporter(sanitiser driven.Sanitiser) *Exporter {
	return &Exporter{sanitiser: sanitiser}
}

// Export retrieves the HTML rendering of a document through src and
// reduces it to the allow-listed subset.
func (e *Exporter) Export(ctx context.Context, src driven.ChangeSource, fileID string) (string, error) {
	raw, err := src.ExportDocument(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("export document: %w", err)
	}
	return e.sanitiser.Sanitise(raw), nil
}
