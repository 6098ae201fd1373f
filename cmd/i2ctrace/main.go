// Command i2ctrace decodes I2C transactions from an ILA capture CSV.
//
// Usage:
//
//	i2ctrace -scl i2c_scl_rx -sda i2c_sda_rx [-addr 0x26] [-db captures.db] capture.csv
//
// Probe names may also come from the environment (I2CTRACE_SCL, I2CTRACE_SDA,
// I2CTRACE_DB); flags take precedence.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"

	"github.com/fpgatools/go-i2ctrace/i2c"
	"github.com/fpgatools/go-i2ctrace/store"
)

// envConfig holds environment-variable defaults for the flags.
type envConfig struct {
	SCLName string `env:"I2CTRACE_SCL"`
	SDAName string `env:"I2CTRACE_SDA"`
	DBPath  string `env:"I2CTRACE_DB"`
}

// stdLogger adapts the standard log package to the decoder's Logger.
type stdLogger struct{}

func (stdLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Println(append([]interface{}{"debug:", msg}, keysAndValues...)...)
}

func main() {
	log.SetFlags(0)

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse environment: %v", err)
	}

	scl := flag.String("scl", cfg.SCLName, "clock probe name (suffix match against the CSV header)")
	sda := flag.String("sda", cfg.SDAName, "data probe name (suffix match against the CSV header)")
	timeCol := flag.String("time-col", "", "time/index column name (default: first CSV column)")
	addrStr := flag.String("addr", "", "only print transactions for this 7-bit address, e.g. 0x26")
	noACK := flag.Bool("no-ack", false, "omit ACK/NACK markers from the output")
	chain := flag.Bool("chain-restarts", false, "chain repeated starts into one transaction (legacy parser behavior)")
	dbPath := flag.String("db", cfg.DBPath, "also persist the capture to this SQLite database")
	verbose := flag.Bool("v", false, "log decoder diagnostics")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] capture.csv\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *scl == "" || *sda == "" {
		log.Fatal("both -scl and -sda (or I2CTRACE_SCL/I2CTRACE_SDA) are required")
	}

	opts := []i2c.Option{}
	if *timeCol != "" {
		opts = append(opts, i2c.WithTimeColumn(*timeCol))
	}
	if *chain {
		opts = append(opts, i2c.WithRepeatedStartPolicy(i2c.RepeatedStartChain))
	}
	if *verbose {
		opts = append(opts, i2c.WithLogger(stdLogger{}))
	}

	path := flag.Arg(0)
	parser := i2c.NewParser(*scl, *sda, opts...)
	txns, stats, err := parser.Parse(path)
	if err != nil {
		log.Fatalf("failed to parse %s: %v", path, err)
	}

	display := txns
	if *addrStr != "" {
		addr, err := strconv.ParseUint(*addrStr, 0, 8)
		if err != nil || addr > 0x7F {
			log.Fatalf("invalid address %q: want a 7-bit value like 0x26", *addrStr)
		}
		display = i2c.FilterByAddress(txns, byte(addr))
	}

	for _, t := range display {
		fmt.Println(t.Format(!*noACK))
	}
	if stats.Truncated > 0 {
		log.Printf("%d truncated transaction(s) discarded", stats.Truncated)
	}

	if *dbPath != "" {
		st, err := store.Open(*dbPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer st.Close()

		id, err := st.SaveCapture(path, *scl, *sda, txns)
		if err != nil {
			log.Fatalf("failed to save capture: %v", err)
		}
		log.Printf("saved %d transaction(s) as capture %s", len(txns), id)
	}
}
