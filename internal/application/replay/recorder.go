package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/mover/internal/application/system"
)

// ErrNoFrames is returned when saving an empty recording
var ErrNoFrames = errors.New("no frames to save")

// Recorder handles input recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for a stage played at a fixed logic tick
func NewRecorder(stage string, dt float64) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Stage:     stage,
			DT:        dt,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// SetBackend notes which physics backend the session ran on
func (r *Recorder) SetBackend(name string) {
	r.data.Backend = name
}

// SetAbilities notes the abilities unlocked when recording started
func (r *Recorder) SetAbilities(abilities []system.Ability) {
	r.data.Abilities = r.data.Abilities[:0]
	for _, a := range abilities {
		r.data.Abilities = append(r.data.Abilities, a.String())
	}
}

// RecordFrame records a single frame's input
func (r *Recorder) RecordFrame(in system.Input) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, toFrame(r.frame, in))
	r.frame++
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return r.encodeAndClose(file)
}

// encodeAndClose writes the replay to wc and closes it, reporting a failed close
func (r *Recorder) encodeAndClose(wc io.WriteCloser) error {
	if err := r.Encode(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close replay file: %w", err)
	}
	return nil
}

// Encode writes the replay JSON to w
func (r *Recorder) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GetData returns the replay data (for testing)
func (r *Recorder) GetData() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
