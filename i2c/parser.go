package i2c

import (
	"io"

	"github.com/fpgatools/go-i2ctrace/trace"
)

// Parser decodes I2C transactions straight from a CSV trace capture.
// It wires the three pipeline stages together: CSV loading, edge
// extraction and transaction decoding.
//
// A Parser holds only configuration. Every Parse call keeps its state in
// locals, so one Parser may be used concurrently on different files.
type Parser struct {
	loader  *trace.Loader
	decoder *Decoder
}

// NewParser creates a Parser for captures containing the given clock and
// data probe names. Names are matched as suffixes of the CSV header entries.
//
// Example:
//
//	parser := i2c.NewParser("soc_i/i_i2c_scl_rx_1", "soc_i/i_i2c_sda_rx_1")
//	txns, stats, err := parser.Parse("capture.csv")
func NewParser(sclName, sdaName string, opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var loaderOpts []trace.LoaderOption
	if cfg.TimeColumn != "" {
		loaderOpts = append(loaderOpts, trace.WithTimeColumn(cfg.TimeColumn))
	}

	return &Parser{
		loader:  trace.NewLoader(sclName, sdaName, loaderOpts...),
		decoder: &Decoder{config: cfg},
	}
}

// Parse loads the capture at path and returns the decoded transactions in
// bus order. Loading failures (missing columns, malformed values) abort
// with a *trace.FormatError; decoding itself never fails.
func (p *Parser) Parse(path string) ([]Transaction, Stats, error) {
	samples, err := p.loader.Parse(path)
	if err != nil {
		return nil, Stats{}, err
	}
	txns, stats := p.decoder.Decode(trace.Edges(samples))
	return txns, stats, nil
}

// ParseReader is Parse for any io.Reader.
// This is useful for testing and reading from non-file sources.
func (p *Parser) ParseReader(r io.Reader) ([]Transaction, Stats, error) {
	samples, err := p.loader.ParseReader(r)
	if err != nil {
		return nil, Stats{}, err
	}
	txns, stats := p.decoder.Decode(trace.Edges(samples))
	return txns, stats, nil
}
