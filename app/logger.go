package app

import (
	"fmt"
	"io"
	"time"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// NewLogger builds the node logger from the configured level and format.
func NewLogger(w io.Writer, cfg Config) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	opts := []log.Option{
		log.LevelOption(level),
		log.TimeFormatOption(time.RFC3339),
	}
	if cfg.LogFormat == LogFormatJSON {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}

	return log.NewLogger(w, opts...).With("module", Name), nil
}
