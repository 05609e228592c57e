package domain

// Audio is a synthesized speech artifact: raw bytes plus their encoding.
type Audio struct {
	Data        []byte
	ContentType string
}

// ChatResponse is the unit returned for one prompt. The field tags match
// the browser contract: "txt" is the completion text, "mp3" a reference
// the caller can resolve to playable audio.
type ChatResponse struct {
	Text     string `json:"txt"`
	AudioRef string `json:"mp3"`
}

// Employee is one person in the planningboard directory.
type Employee struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// Allocation summarizes how much of an employee's capacity is free and
// occupied within a date range.
type Allocation struct {
	Name           string  `json:"name"`
	AmountFree     float64 `json:"amount_free"`
	AmountOccupied float64 `json:"amount_occupied"`
}
