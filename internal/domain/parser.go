package domain

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// Mode selects how structural misuse is handled.
type Mode uint8

const (
	// ModeLenient skips the offending line and records a Diagnostic.
	ModeLenient Mode = iota
	// ModeStrict aborts the parse with a *StructuralError.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "lenient"
}

// ParseMode reads "lenient" or "strict". An empty string is lenient.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return ModeLenient, nil
	case "strict":
		return ModeStrict, nil
	default:
		return ModeLenient, fmt.Errorf("parse mode %q: must be lenient or strict", s)
	}
}

// Structural misuse causes.
var (
	ErrNoActiveMethod = errors.New("observation row without a method")
	ErrUnknownMethod  = errors.New("observation row under an unknown method")
	ErrNoObservation  = errors.New("lab result without an observation")
	ErrNotSample      = errors.New("lab result on a non-sample observation")
	ErrUnterminated   = errors.New("unterminated investigation")
)

// Diagnostic records a line skipped in lenient mode.
type Diagnostic struct {
	Line   int    `json:"line"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d (%s): %s", d.Line, d.Code, d.Reason)
}

// StructuralError aborts a strict parse.
type StructuralError struct {
	Path string
	Line int
	Code string
	Err  error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.Code, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// Option configures a Parser.
type Option func(*Parser)

// WithMode sets the structural misuse policy. The default is ModeLenient.
func WithMode(m Mode) Option {
	return func(p *Parser) { p.mode = m }
}

// WithLogger sets the logger used for skipped lines.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// cursor indexes the observation that annotation and lab lines attach to.
type cursor int

const noObservation cursor = -1

func (c cursor) valid() bool { return c >= 0 }

// annotationKind is the record code family of HM, TX, HT and EM.
type annotationKind uint8

const (
	annotationNote annotationKind = iota
	annotationFreeText
	annotationHiddenText
	annotationSoilType
)

// annotationTargetKind says where an annotation line lands.
type annotationTargetKind uint8

const (
	targetNone annotationTargetKind = iota
	targetInvestigation
	targetObservation
)

// annotationTarget picks the attachment point of an annotation: the current
// observation when there is one, otherwise the investigation, except that a
// soil type override with no observation is dropped.
func annotationTarget(kind annotationKind, c cursor) annotationTargetKind {
	switch {
	case c.valid():
		return targetObservation
	case kind == annotationSoilType:
		return targetNone
	default:
		return targetInvestigation
	}
}

// numericRowRe matches the leading token of an observation row.
var numericRowRe = regexp.MustCompile(`^[+-]?[0-9]+([.,][0-9]+)?$`)

// terminatorCode closes the investigation in progress.
const terminatorCode = "-1"

// Parser turns the lines of one file into an InfraFile. A Parser is not safe
// for concurrent use; parse files in parallel with one Parser each.
type Parser struct {
	mode   Mode
	logger *slog.Logger

	src    Source
	file   *InfraFile
	inv    Investigation
	cursor cursor
	line   int
	// open is set once the investigation in progress has received a line.
	open bool
}

// NewParser returns a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		mode:   ModeLenient,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is shorthand for NewParser(opts...).Parse(src).
func Parse(src Source, opts ...Option) (*InfraFile, error) {
	return NewParser(opts...).Parse(src)
}

// Parse consumes src.Lines in order. Investigations are post-processed as
// their terminator is reached and stamped with the file's Source and
// Spatial at the end.
func (p *Parser) Parse(src Source) (*InfraFile, error) {
	p.reset(src)

	for i, raw := range src.Lines {
		p.line = i + 1
		tokens := strings.Fields(raw)
		if len(tokens) == 0 {
			continue
		}
		if err := p.dispatch(tokens); err != nil {
			return nil, err
		}
	}

	if p.open {
		p.logger.Debug("dropping unterminated investigation",
			"path", src.Path,
			"observations", len(p.inv.Observations),
		)
		p.file.Diagnostics = append(p.file.Diagnostics, Diagnostic{
			Line:   len(src.Lines),
			Code:   "EOF",
			Reason: ErrUnterminated.Error(),
		})
	}

	stampInvestigations(p.file)
	return p.file, nil
}

func (p *Parser) reset(src Source) {
	p.src = src
	p.file = &InfraFile{Source: Source{Path: src.Path, Encoding: src.Encoding}}
	p.inv = Investigation{}
	p.cursor = noObservation
	p.line = 0
	p.open = false
}

func (p *Parser) dispatch(tokens []string) error {
	code, params := tokens[0], tokens[1:]

	if h, ok := fileRecords[code]; ok {
		h(p.file, params)
		return nil
	}
	if h, ok := investigationRecords[code]; ok {
		h(&p.inv, params)
		p.open = true
		return nil
	}
	if kind, ok := annotationRecords[code]; ok {
		p.annotate(kind, params)
		p.open = true
		return nil
	}

	switch {
	case code == terminatorCode:
		p.terminate(params)
		return nil
	case code == "RK":
		return p.attachLab(code, newGrainSize(params))
	case code == "LB":
		return p.attachLab(code, newLabResult(params))
	case numericRowRe.MatchString(code):
		return p.observe(tokens)
	default:
		return nil
	}
}

// observe appends a data row under the investigation's method.
func (p *Parser) observe(tokens []string) error {
	method := p.inv.Method.Token
	switch method.State() {
	case Missing:
		return p.misuse(tokens[0], ErrNoActiveMethod)
	case Fallback:
		return p.misuse(tokens[0], fmt.Errorf("%w %q", ErrUnknownMethod, method.Raw()))
	}

	m, _ := method.Get()
	values, ok := decodeRow(m, tokens)
	if !ok {
		return p.misuse(tokens[0], fmt.Errorf("%w %q", ErrUnknownMethod, m))
	}
	p.inv.Observations = append(p.inv.Observations, Observation{Values: values})
	p.cursor = cursor(len(p.inv.Observations) - 1)
	p.open = true
	return nil
}

func (p *Parser) annotate(kind annotationKind, params []string) {
	text := ParsedValue(strings.Join(params, " "))

	switch annotationTarget(kind, p.cursor) {
	case targetObservation:
		obs := &p.inv.Observations[p.cursor]
		switch kind {
		case annotationNote:
			obs.Notes = append(obs.Notes, text)
		case annotationFreeText:
			obs.FreeText = append(obs.FreeText, text)
		case annotationHiddenText:
			obs.HiddenText = append(obs.HiddenText, text)
		case annotationSoilType:
			obs.UnofficialSoilTypes = append(obs.UnofficialSoilTypes, text)
		}
	case targetInvestigation:
		switch kind {
		case annotationNote:
			p.inv.Notes = append(p.inv.Notes, text)
		case annotationFreeText:
			p.inv.FreeText = append(p.inv.FreeText, text)
		case annotationHiddenText:
			p.inv.HiddenText = append(p.inv.HiddenText, text)
		}
	}
}

func (p *Parser) attachLab(code string, r LabResult) error {
	if !p.cursor.valid() {
		return p.misuse(code, ErrNoObservation)
	}
	obs := p.inv.Observations[p.cursor]
	sample := obs.Sample()
	if sample == nil {
		return p.misuse(code, fmt.Errorf("%w: %s", ErrNotSample, obs.Method()))
	}
	sample.Lab = append(sample.Lab, r)
	p.open = true
	return nil
}

// terminate closes the investigation in progress.
func (p *Parser) terminate(params []string) {
	p.inv.Termination.Reason = column(params, 0, DecodeTermination)
	Finalize(&p.inv)
	p.file.Investigations = append(p.file.Investigations, p.inv)

	p.inv = Investigation{}
	p.cursor = noObservation
	p.open = false
}

// misuse applies the structural misuse policy to the current line.
func (p *Parser) misuse(code string, cause error) error {
	if p.mode == ModeStrict {
		return &StructuralError{Path: p.src.Path, Line: p.line, Code: code, Err: cause}
	}
	p.logger.Debug("skipping line",
		"path", p.src.Path,
		"line", p.line,
		"code", code,
		"reason", cause,
	)
	p.file.Diagnostics = append(p.file.Diagnostics, Diagnostic{
		Line:   p.line,
		Code:   code,
		Reason: cause.Error(),
	})
	return nil
}

// stampInvestigations copies the file's Source and Spatial into every
// investigation so they stay self-describing after a merge.
func stampInvestigations(f *InfraFile) {
	for i := range f.Investigations {
		f.Investigations[i].Source = f.Source
		f.Investigations[i].Spatial = f.Spatial
	}
}
