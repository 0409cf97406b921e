package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/twpayne/go-geom/encoding/geojson"
)

// RawFile is an unparsed file taken from the source topic. Key carries the
// file name; an "encoding" header, when present, names the charset.
type RawFile struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Name returns the file name from the message key.
func (r RawFile) Name() string { return string(r.Key) }

// InvestigationEvent is one investigation as published downstream.
type InvestigationEvent struct {
	ID            string            `json:"id"`
	SourceFile    string            `json:"source_file"`
	Index         int               `json:"index"`
	Method        string            `json:"method"`
	Investigation Investigation     `json:"investigation"`
	Geometry      *geojson.Geometry `json:"geometry,omitempty"`
	Diagnostics   []Diagnostic      `json:"diagnostics,omitempty"`
	ProcessedAt   time.Time         `json:"processed_at"`
}

// NewInvestigationEvents emits one event per investigation of f, in file
// order. File diagnostics travel with every event of the file.
func NewInvestigationEvents(f *InfraFile) []InvestigationEvent {
	now := clock.Now()
	events := make([]InvestigationEvent, 0, len(f.Investigations))
	for i := range f.Investigations {
		inv := &f.Investigations[i]
		ev := InvestigationEvent{
			ID:            generateID(f.Source.Path, i, inv),
			SourceFile:    f.Source.Path,
			Index:         i,
			Method:        inv.Method.Token.Or(methodNone).String(),
			Investigation: *inv,
			Diagnostics:   f.Diagnostics,
			ProcessedAt:   now,
		}
		// Investigations without coordinates are still published.
		if g, err := inv.GeoJSON(); err == nil {
			ev.Geometry = g
		}
		events = append(events, ev)
	}
	return events
}

// generateID hashes the file name, position and point identity so that
// replaying the same file yields the same IDs.
func generateID(path string, index int, inv *Investigation) string {
	input := fmt.Sprintf("%s|%d|%s|%s|%s|%s",
		filepath.Base(path), index,
		inv.Coordinates.PointID.String(),
		inv.Coordinates.X.String(),
		inv.Coordinates.Y.String(),
		inv.Method.Token.String(),
	)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if m, ok := inv.Method.Token.Get(); ok {
		return m.String() + "-" + short
	}
	return short
}
