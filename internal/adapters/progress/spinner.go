package progress

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// SpinnerSink reports deployment progress with a spinner on w
type SpinnerSink struct {
	out     io.Writer
	spinner *spinner.Spinner
	stages  []stageInfo
	mu      sync.Mutex
}

type stageInfo struct {
	Stage     string
	Message   string
	StartTime time.Time
	EndTime   time.Time
}

// NewSpinnerSink creates a new spinner-based progress sink writing to out
func NewSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completeCurrentStage()

	if event.Stage == usecase.StageCompleted || !event.Spinner {
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		r.stages = nil
		return
	}

	r.stages = append(r.stages, stageInfo{
		Stage:     event.Stage,
		Message:   event.Message,
		StartTime: time.Now(),
	})

	r.spinner.Suffix = " " + r.display()
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.print(color.New(color.FgRed), message)
}

func (r *SpinnerSink) print(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage marks the current stage as completed. Caller holds the lock.
func (r *SpinnerSink) completeCurrentStage() {
	if len(r.stages) > 0 {
		idx := len(r.stages) - 1
		if r.stages[idx].EndTime.IsZero() {
			r.stages[idx].EndTime = time.Now()
		}
	}
}

// display renders the stage trail, e.g. "✓ Loading MetaLinks factory (12ms) → ● Deploying MetaLinks"
func (r *SpinnerSink) display() string {
	parts := make([]string, 0, len(r.stages))
	for _, stage := range r.stages {
		if stage.EndTime.IsZero() {
			parts = append(parts, fmt.Sprintf("● %s", color.New(color.FgYellow).Sprint(stage.Message)))
			continue
		}
		duration := stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond)
		parts = append(parts, fmt.Sprintf("✓ %s (%s)", color.New(color.FgGreen).Sprint(stage.Message), duration))
	}
	return strings.Join(parts, " → ")
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
