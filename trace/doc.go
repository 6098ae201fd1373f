// Package trace provides loading of two-wire logic-analyzer captures from CSV
// files and reduction of the captured samples to edge events.
//
// # CSV Trace Format
//
// The expected input is the CSV export of an FPGA integrated-logic-analyzer
// capture (for example Vivado's write_hw_ila_data -csv_file output): a header
// row naming every captured probe, followed by one row per sample. The two
// monitored probes (clock and data) must carry boolean/binary values; one
// additional column carries a monotonically increasing sample index or
// timestamp.
//
// Example (probe names shortened):
//
//	Sample in Buffer,Sample in Window,TRIGGER,soc_i/i_i2c_scl_rx_1,soc_i/i_i2c_sda_rx_1
//	Radix - UNSIGNED,UNSIGNED,UNSIGNED,BINARY,BINARY
//	0,0,0,1,1
//	1,1,0,1,0
//	2,2,0,0,0
//
// Probe names in ILA exports are hierarchical, so the configured column names
// are matched as suffixes of the header entries. The Radix row emitted by
// newer Vivado versions, blank lines and '#' comment lines are skipped.
//
// # Usage
//
// Load samples and reduce them to edges:
//
//	loader := trace.NewLoader("i2c_scl_rx", "i2c_sda_rx")
//	samples, err := loader.Parse("capture.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	edges := trace.Edges(samples)
//
// # Error Handling
//
// Parse returns a *FormatError for malformed input:
//   - configured clock/data column missing from the header
//   - sample values that are not boolean/binary
//   - a time/index column that is not strictly increasing
//
// All errors include the offending line number and column where known.
package trace
