package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerInterval is the frame period of the progress indicator.
const spinnerInterval = 80 * time.Millisecond

// spinnerFrames are the braille animation frames, in display order.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a terminal progress indicator for operations with no
// incremental output, such as Graphviz SVG rendering. It writes to
// stderr so piped command output stays clean, and honors context
// cancellation so an interrupt tears the line down before exit.
type Spinner struct {
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	mu      sync.Mutex
}

// newSpinner creates a spinner with the given message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that also stops when ctx is
// cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context has been cancelled.
// Stop cancels it as part of teardown, so callers distinguishing an
// interrupt from normal completion must check before stopping.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
