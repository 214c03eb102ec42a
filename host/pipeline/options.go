package pipeline

// Config holds the pipeline's configuration.
//
// Per-control-transfer timeouts are not configured here: they belong to the
// Transport implementation (host/usbdevice.Transport's own timeout, set at
// construction), since Transport.Control is the thing that actually issues
// the USB request.
type Config struct {
	// ProgressCallback is called during long operations to report progress
	// (optional).
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional).
	Logger Logger
}

// defaultConfig returns the pipeline's default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring a Pipeline.
type Option func(*Config)

// WithProgressCallback sets a callback invoked as pages are processed.
//
// Example:
//
//	p := pipeline.New(transport, layout, nvramSize,
//	    pipeline.WithProgressCallback(func(p pipeline.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for pipeline operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
