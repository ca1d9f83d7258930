package logging

import (
	"context"
	"log/slog"

	"scenerender/internal/config"
)

// Assert reports a fatal configuration error. With debug assertions enabled
// it panics with err; otherwise it logs err at error level and returns so
// the caller can skip the offending work.
func Assert(err error, attrs ...any) {
	if err == nil {
		return
	}
	if config.DebugAssertions() {
		panic(err)
	}
	Logger().Log(context.Background(), slog.LevelError, err.Error(), attrs...)
}
