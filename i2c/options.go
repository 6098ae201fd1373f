package i2c

// RepeatedStartPolicy selects how a START condition observed mid-transaction
// (no intervening STOP) is handled. Real captures rarely exercise repeated
// starts, so both interpretations are kept available.
type RepeatedStartPolicy int

const (
	// RepeatedStartNew discards the incomplete phase and begins a fresh
	// pending transaction at the repeated-START edge. The eventual STOP
	// then finalizes only the last phase. This is the default.
	RepeatedStartNew RepeatedStartPolicy = iota

	// RepeatedStartChain keeps one transaction across phases: data bytes
	// accumulate, and the address byte of the newest phase replaces the
	// recorded address and direction. This matches the legacy ILA parser
	// behavior.
	RepeatedStartChain
)

// Logger is an optional logging interface for decoder diagnostics
// (truncated transactions, repeated starts). This allows integration with
// any logging framework.
//
// Example with log/slog:
//
//	type SlogAdapter struct{ L *slog.Logger }
//	func (a SlogAdapter) Debug(msg string, kv ...interface{}) { a.L.Debug(msg, kv...) }
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})
}

// Config holds the decoder configuration.
type Config struct {
	// RepeatedStart selects the repeated-START handling policy
	RepeatedStart RepeatedStartPolicy

	// Logger receives decoding diagnostics (optional)
	Logger Logger

	// TimeColumn overrides the time/index column of the CSV loader
	// (Parser only; ignored by a bare Decoder)
	TimeColumn string
}

func defaultConfig() Config {
	return Config{
		RepeatedStart: RepeatedStartNew,
	}
}

// Option is a functional option for configuring a Decoder or Parser.
type Option func(*Config)

// WithRepeatedStartPolicy selects the repeated-START handling policy.
//
// Example:
//
//	dec := i2c.NewDecoder(i2c.WithRepeatedStartPolicy(i2c.RepeatedStartChain))
func WithRepeatedStartPolicy(policy RepeatedStartPolicy) Option {
	return func(c *Config) {
		c.RepeatedStart = policy
	}
}

// WithLogger sets a logger for decoding diagnostics.
//
// Example:
//
//	parser := i2c.NewParser("scl", "sda", i2c.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTimeColumn selects the header column holding the sample time or index.
// By default the first column is used. Only meaningful for a Parser.
//
// Example:
//
//	parser := i2c.NewParser("scl", "sda", i2c.WithTimeColumn("Sample in Window"))
func WithTimeColumn(name string) Option {
	return func(c *Config) {
		c.TimeColumn = name
	}
}
