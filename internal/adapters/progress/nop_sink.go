package progress

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

// OnProgress does nothing with progress events
func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

// Info does nothing with info messages
func (n *NopSink) Info(message string) {}

// Error does nothing with error messages
func (n *NopSink) Error(message string) {}

// ProvideProgressSink shows a spinner on stderr only in interactive terminal sessions
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	return sinkFor(cfg, os.Stderr)
}

func sinkFor(cfg *config.RuntimeConfig, out io.Writer) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Debug {
		return NewNopSink()
	}
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return NewNopSink()
	}
	return NewSpinnerSink(out)
}

// Ensure NopSink implements ProgressSink
var _ usecase.ProgressSink = (*NopSink)(nil)
