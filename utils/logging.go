package utils

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// NewLogger builds a logfmt logger writing to w, filtered at levelName
// (debug, info, warn, error or none)
func NewLogger(w io.Writer, levelName string) (log.Logger, error) {
	if levelName == "none" {
		return log.NewNopLogger(), nil
	}
	lvl, err := parseLevel(levelName)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, lvl)
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}

func parseLevel(name string) (level.Option, error) {
	switch name {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, errors.Errorf("[NewLogger] unknown log level %q", name)
}
