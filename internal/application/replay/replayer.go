package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/mover/internal/application/system"
)

// DefaultDT is used for recordings that do not carry a tick length
const DefaultDT = 1.0 / 60.0

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	if data.DT <= 0 {
		data.DT = DefaultDT
	}
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return DecodeReplay(file)
}

// DecodeReplay reads replay JSON from r
func DecodeReplay(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.Input, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.Input{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return system.Input{
		Horizontal:   fi.H,
		Vertical:     fi.V,
		JumpPressed:  fi.JP,
		JumpHeld:     fi.J,
		JumpReleased: fi.JR,
		DashPressed:  fi.Dsh,
		HookPressed:  fi.Hk,
		ParryPressed: fi.Pr,
	}, true
}

// Data returns the replay being played
func (r *Replayer) Data() ReplayData {
	return r.data
}

// Abilities resolves the abilities the recording started with
func (r *Replayer) Abilities() ([]system.Ability, error) {
	out := make([]system.Ability, 0, len(r.data.Abilities))
	for _, name := range r.data.Abilities {
		a, err := system.ParseAbility(name)
		if err != nil {
			return nil, fmt.Errorf("replay abilities: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}

// DT returns the logic tick length the replay was recorded with
func (r *Replayer) DT() float64 {
	return r.data.DT
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing, holding one input for every frame
func CreateTestReplayData(frames int, in system.Input) ReplayData {
	data := ReplayData{
		Version:   Version,
		Stage:     "test",
		DT:        DefaultDT,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}
	for i := range data.Frames {
		data.Frames[i] = toFrame(i, in)
	}
	return data
}

func toFrame(f int, in system.Input) FrameInput {
	return FrameInput{
		F:   f,
		H:   in.Horizontal,
		V:   in.Vertical,
		J:   in.JumpHeld,
		JP:  in.JumpPressed,
		JR:  in.JumpReleased,
		Dsh: in.DashPressed,
		Hk:  in.HookPressed,
		Pr:  in.ParryPressed,
	}
}
