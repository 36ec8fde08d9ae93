package replay

// FrameInput records the input snapshot for a single logic tick
type FrameInput struct {
	F   int     `json:"f"`             // Frame number
	H   float64 `json:"h,omitempty"`   // Horizontal axis
	V   float64 `json:"v,omitempty"`   // Vertical axis
	J   bool    `json:"j,omitempty"`   // JumpHeld
	JP  bool    `json:"jp,omitempty"`  // JumpPressed
	JR  bool    `json:"jr,omitempty"`  // JumpReleased
	Dsh bool    `json:"dsh,omitempty"` // DashPressed
	Hk  bool    `json:"hk,omitempty"`  // HookPressed
	Pr  bool    `json:"pr,omitempty"`  // ParryPressed
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Stage     string       `json:"stage"`
	Backend   string       `json:"backend,omitempty"`
	Abilities []string     `json:"abilities,omitempty"`
	DT        float64      `json:"dt"` // logic tick length in seconds
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// Version is written into new recordings
const Version = "2.0"
