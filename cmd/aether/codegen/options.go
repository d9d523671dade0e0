package codegen

import "log/slog"

// Defaults for Options fields left empty.
const (
	DefaultEguiVersion = "0.33.3"
	DefaultEdition     = "2021"
	DefaultWindowTitle = "Generated App"
	DefaultCrateName   = "my_app"
)

// DefaultWindowSize is the initial inner size of the generated window.
var DefaultWindowSize = [2]float64{320, 240}

// Options tune the generated manifest and entry point. The zero value is
// usable; every empty field takes its default.
type Options struct {
	EguiVersion string
	Edition     string
	WindowTitle string
	WindowSize  [2]float64
	// Logger receives parse fallbacks. Nil means slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.EguiVersion == "" {
		o.EguiVersion = DefaultEguiVersion
	}
	if o.Edition == "" {
		o.Edition = DefaultEdition
	}
	if o.WindowTitle == "" {
		o.WindowTitle = DefaultWindowTitle
	}
	if o.WindowSize[0] <= 0 || o.WindowSize[1] <= 0 {
		o.WindowSize = DefaultWindowSize
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
