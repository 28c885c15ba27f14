package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/utils"
	"github.com/MKhiriev/go-contact-sync/models"
)

// Line types written by the JSON-lines consumer.
const (
	LineChange        = "change"
	LineCycleComplete = "cycle_complete"
	LineCycleError    = "cycle_error"
)

// Line is one JSON document written by the JSON-lines consumer.
type Line struct {
	Type    string              `json:"type"`
	CycleID string              `json:"cycle_id,omitempty"`
	Event   *models.ChangeEvent `json:"event,omitempty"`
	Error   *models.CycleError  `json:"error,omitempty"`
	At      time.Time           `json:"at"`
}

type jsonLinesConsumer struct {
	mu  sync.Mutex
	enc *json.Encoder
	now func() time.Time
}

// NewJSONLinesConsumer returns a [ChangeConsumer] that writes every callback
// to w as one JSON document per line. It is used for dry runs.
func NewJSONLinesConsumer(w io.Writer) ChangeConsumer {
	return &jsonLinesConsumer{enc: json.NewEncoder(w), now: time.Now}
}

func (j *jsonLinesConsumer) OnChange(ctx context.Context, event models.ChangeEvent) error {
	return j.write(ctx, Line{Type: LineChange, Event: &event})
}

func (j *jsonLinesConsumer) OnCycleComplete(ctx context.Context) error {
	return j.write(ctx, Line{Type: LineCycleComplete})
}

func (j *jsonLinesConsumer) OnCycleError(ctx context.Context, kind models.ErrorKind, message string) error {
	return j.write(ctx, Line{Type: LineCycleError, Error: &models.CycleError{Kind: kind, Message: message}})
}

func (j *jsonLinesConsumer) write(ctx context.Context, line Line) error {
	line.CycleID, _ = utils.GetCycleIDFromContext(ctx)
	line.At = j.now().UTC()

	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.enc.Encode(line); err != nil {
		return fmt.Errorf("write %s line: %w", line.Type, err)
	}
	return nil
}
