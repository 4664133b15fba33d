package frame

import (
	"errors"
	"slices"
	"sync"
)

var ErrNoFrames = errors.New("no recorded frames")

// Recorder captures the frames passing through a stream between Start and
// Stop. It is safe for concurrent use, so a source goroutine can feed
// OnFrame while another goroutine starts and stops the capture.
type Recorder struct {
	mu       sync.Mutex
	active   bool
	buffer   []Frame
	recorded []Frame
}

// NewRecorder creates an idle recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins a new capture, discarding the previous one
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = true
	r.buffer = nil
	r.recorded = nil
}

// Stop ends the capture and returns the captured frames
func (r *Recorder) Stop() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = false
	r.recorded = r.buffer
	r.buffer = nil
	return slices.Clone(r.recorded)
}

// Active reports whether a capture is running
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// OnFrame records f while a capture is running and reports whether it did
func (r *Recorder) OnFrame(f Frame) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		return false
	}
	f.Samples = slices.Clone(f.Samples)
	r.buffer = append(r.buffer, f)
	return true
}

// Frames returns the frames of the last finished capture
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.recorded)
}

// Merged joins the last finished capture into a single frame
func (r *Recorder) Merged() (Frame, error) {
	frames := r.Frames()
	if len(frames) == 0 {
		return Frame{}, ErrNoFrames
	}

	merged := frames[0]
	for _, f := range frames[1:] {
		var err error
		if merged, err = merged.Concat(f); err != nil {
			return Frame{}, err
		}
	}
	return merged, nil
}
