package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultSampleCapacity is the default initial capacity for the sample slice.
// ILA capture buffers are typically 1024 samples or more.
const DefaultSampleCapacity = 1024

// Loader parses CSV trace captures into sample sequences.
// Construct with NewLoader; a Loader holds only configuration and is safe
// for concurrent use.
type Loader struct {
	sclName  string
	sdaName  string
	timeName string
}

// LoaderOption is a functional option for configuring a Loader.
type LoaderOption func(*Loader)

// WithTimeColumn selects the header column holding the sample time or index.
// By default the first column of the header is used, which matches Vivado's
// "Sample in Buffer" export layout.
//
// Example:
//
//	loader := trace.NewLoader("scl", "sda", trace.WithTimeColumn("Sample in Window"))
func WithTimeColumn(name string) LoaderOption {
	return func(l *Loader) {
		l.timeName = name
	}
}

// NewLoader creates a Loader for a capture containing the given clock and
// data probe names. Names are matched as suffixes of the header entries,
// since ILA exports prefix probes with their design hierarchy.
//
// Example:
//
//	loader := trace.NewLoader("i2c_scl_rx", "i2c_sda_rx")
//	samples, err := loader.Parse("capture.csv")
func NewLoader(sclName, sdaName string, opts ...LoaderOption) *Loader {
	l := &Loader{
		sclName: sclName,
		sdaName: sdaName,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Parse reads and parses a CSV trace capture from the given file path.
// Returns the ordered sample sequence or a *FormatError describing the
// first malformed element.
func (l *Loader) Parse(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.ParseReader(f)
}

// ParseReader parses a CSV trace capture from any io.Reader.
// This is useful for testing and reading from non-file sources.
func (l *Loader) ParseReader(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	// ILA exports pad the Radix row differently from data rows
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &FormatError{Msg: "empty file"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	sclIdx, err := findColumn(header, l.sclName)
	if err != nil {
		return nil, err
	}
	sdaIdx, err := findColumn(header, l.sdaName)
	if err != nil {
		return nil, err
	}
	timeIdx := 0
	if l.timeName != "" {
		timeIdx, err = findColumn(header, l.timeName)
		if err != nil {
			return nil, err
		}
	}

	samples := make([]Sample, 0, DefaultSampleCapacity)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &FormatError{Line: pe.Line, Msg: pe.Err.Error()}
			}
			return nil, fmt.Errorf("failed to read trace: %w", err)
		}
		line, _ := cr.FieldPos(0)

		// Newer Vivado versions insert a radix description row
		if strings.HasPrefix(strings.TrimSpace(rec[0]), "Radix") {
			continue
		}

		if len(rec) <= sclIdx || len(rec) <= sdaIdx || len(rec) <= timeIdx {
			return nil, &FormatError{Line: line, Msg: fmt.Sprintf("row has %d fields, need at least %d", len(rec), max(sclIdx, sdaIdx, timeIdx)+1)}
		}

		t, err := strconv.ParseFloat(strings.TrimSpace(rec[timeIdx]), 64)
		if err != nil {
			return nil, &FormatError{Line: line, Column: header[timeIdx], Msg: fmt.Sprintf("invalid time value %q", rec[timeIdx])}
		}
		if n := len(samples); n > 0 && t <= samples[n-1].Time {
			return nil, &FormatError{Line: line, Column: header[timeIdx], Msg: fmt.Sprintf("time %v not strictly increasing (previous %v)", t, samples[n-1].Time)}
		}

		scl, err := parseBit(rec[sclIdx])
		if err != nil {
			return nil, &FormatError{Line: line, Column: header[sclIdx], Msg: err.Error()}
		}
		sda, err := parseBit(rec[sdaIdx])
		if err != nil {
			return nil, &FormatError{Line: line, Column: header[sdaIdx], Msg: err.Error()}
		}

		samples = append(samples, Sample{Time: t, SCL: scl, SDA: sda})
	}

	return samples, nil
}

// findColumn locates a probe column by suffix match against the header.
func findColumn(header []string, name string) (int, error) {
	for idx, title := range header {
		if strings.HasSuffix(strings.TrimSpace(title), name) {
			return idx, nil
		}
	}
	return 0, &FormatError{Column: name, Msg: "signal name not found in header"}
}

// parseBit converts a textual sample value to a line level.
// Accepts the 0/1 and true/false encodings used by capture-tool exports.
func parseBit(field string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "0", "false", "f":
		return false, nil
	case "1", "true", "t":
		return true, nil
	default:
		return false, fmt.Errorf("invalid sample value %q", field)
	}
}
