// Package report renders parsed Infra files for people and for tools.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/infra-ingest/internal/domain"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Write renders f to w in the given format.
func Write(w io.Writer, format Format, f *domain.InfraFile) error {
	switch format {
	case FormatJSON:
		return JSON(w, f)
	case FormatYAML:
		return YAML(w, f)
	default:
		return Text(w, f)
	}
}

// JSON writes f as indented JSON.
func JSON(w io.Writer, f *domain.InfraFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// YAML writes the JSON document of f as YAML, so both outputs share field
// names and the fallback shape.
func YAML(w io.Writer, f *domain.InfraFile) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode json as yaml: %w", err)
	}
	resetStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// resetStyle drops the flow and quoting styles carried over from JSON.
func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

// displayer is satisfied by every domain.Field.
type displayer interface {
	Display() (string, bool)
}

// described shows a token's long name instead of its code.
type described[T interface{ Description() string }] struct {
	f domain.Field[T]
}

func (d described[T]) Display() (string, bool) {
	if v, ok := d.f.Get(); ok {
		return v.Description(), true
	}
	return d.f.Display()
}

const rule = "--------------------------------------------------"

// Text writes a human-readable report. Missing fields are left out.
func Text(w io.Writer, f *domain.InfraFile) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "  INFRA FILE")
	fmt.Fprintln(&buf, rule)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File path:\t%s\n", f.Source.Path)
	fmt.Fprintf(tw, "File encoding:\t%s\n", f.Source.Encoding)
	field(tw, "Format version", f.Format.Version)
	field(tw, "Software used", f.Format.Software)
	field(tw, "Software version", f.Format.SoftwareVersion)
	field(tw, "Coordinate system", f.Spatial.CoordinateSystem)
	field(tw, "Elevation system", f.Spatial.ElevationSystem)
	fmt.Fprintf(tw, "Investigations:\t%d\n", len(f.Investigations))
	_ = tw.Flush()

	for i := range f.Investigations {
		fmt.Fprintln(&buf)
		investigation(&buf, i+1, &f.Investigations[i])
	}

	if len(f.Diagnostics) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Diagnostics:")
		for _, d := range f.Diagnostics {
			fmt.Fprintf(&buf, "  %s\n", d)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func field(w io.Writer, label string, f displayer) {
	if s, ok := f.Display(); ok {
		fmt.Fprintf(w, "%s:\t%s\n", label, s)
	}
}

func texts(w io.Writer, label string, fs []domain.Field[string]) {
	for _, f := range fs {
		field(w, label, f)
	}
}

func investigation(buf *bytes.Buffer, n int, inv *domain.Investigation) {
	fmt.Fprintf(buf, "  INVESTIGATION %d:\n", n)

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	field(tw, "Investigation type", described[domain.MethodToken]{inv.Method.Token})
	field(tw, "Method code", inv.Method.Token)
	field(tw, "Category", inv.Method.Category)
	field(tw, "Method ID", inv.Method.ID)
	field(tw, "Standard", inv.Method.Standard)
	field(tw, "Sampler", described[domain.Sampler]{inv.Method.Sampler})
	field(tw, "Specifier", inv.Method.Specifier)

	field(tw, "Owner", inv.Organisations.Owner)
	field(tw, "Investigator", inv.Organisations.Investigator)
	field(tw, "Classification", described[domain.ClassificationName]{inv.Classification.Name})
	field(tw, "Work ID", inv.Work.ID)
	field(tw, "Work name", inv.Work.Name)

	field(tw, "Record number", inv.Record.Number)
	field(tw, "Driller", inv.Record.Driller)
	field(tw, "Inspector", inv.Record.Inspector)
	field(tw, "Processor", inv.Record.Processor)
	field(tw, "Digitized", inv.Record.Digitized)
	field(tw, "Condition", inv.Record.Condition)

	field(tw, "Equipment number", inv.Equipment.Number)
	field(tw, "Equipment", inv.Equipment.Description)
	field(tw, "Cone size", inv.Equipment.ConeSize)

	field(tw, "Northing (X)", inv.Coordinates.X)
	field(tw, "Easting (Y)", inv.Coordinates.Y)
	field(tw, "Start elevation", inv.Coordinates.StartElevation)
	field(tw, "Date", inv.Coordinates.Date)
	field(tw, "Point ID", inv.Coordinates.PointID)

	field(tw, "Line", inv.Line.Name)
	field(tw, "Stake", inv.Line.Stake)
	field(tw, "Distance", inv.Line.Distance)

	field(tw, "Program", inv.Program.Name)
	field(tw, "Program date", inv.Program.Date)
	field(tw, "Program author", inv.Program.Author)
	texts(tw, "Guide", inv.Program.Guide)

	field(tw, "Initial borehole depth", inv.InitialBorehole.Depth)
	field(tw, "Initial borehole method", described[domain.InitialBoreToken]{inv.InitialBorehole.Method})
	field(tw, "Initial borehole soil", inv.InitialBorehole.SoilType)

	texts(tw, "Note", inv.Notes)
	texts(tw, "Free text", inv.FreeText)

	field(tw, "Termination reason", described[domain.TerminationToken]{inv.Termination.Reason})
	field(tw, "Total depth", inv.TotalDepth)
	fmt.Fprintf(tw, "Observations:\t%d\n", len(inv.Observations))
	_ = tw.Flush()

	if len(inv.SoilLayers) > 0 {
		fmt.Fprintln(buf, "  Soil layers:")
		tw = tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "    SOIL\tTHICKNESS")
		for _, l := range inv.SoilLayers {
			fmt.Fprintf(tw, "    %s\t%s\n", l.SoilType, formatMetres(l.Thickness))
		}
		_ = tw.Flush()
	}

	if len(inv.Observations) > 0 {
		fmt.Fprintln(buf, "  Observation rows:")
		tw = tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "    DEPTH\tSOIL\tNOTES")
		for _, o := range inv.Observations {
			fmt.Fprintf(tw, "    %s\t%s\t%d\n", orDash(o.Depth()), orDash(o.SoilType()), len(o.Notes)+len(o.FreeText))
		}
		_ = tw.Flush()
	}
}

func orDash(f displayer) string {
	if s, ok := f.Display(); ok {
		return s
	}
	return "-"
}

func formatMetres(v float64) string {
	return fmt.Sprintf("%.2f m", v)
}

// Summary writes a per-method count table with a total row. Methods with
// no investigations are left out.
func Summary(w io.Writer, counts map[domain.MethodToken]int) error {
	methods := make([]domain.MethodToken, 0, len(counts))
	for m := range counts {
		methods = append(methods, m)
	}
	slices.Sort(methods)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tDESCRIPTION\tCOUNT")
	fmt.Fprintln(tw, "------\t-----------\t-----")
	total := 0
	for _, m := range methods {
		if counts[m] == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", m, m.Description(), counts[m])
		total += counts[m]
	}
	fmt.Fprintf(tw, "TOTAL\t\t%d\n", total)
	return tw.Flush()
}
