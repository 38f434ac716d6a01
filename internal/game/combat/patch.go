package combat

// Line is one entry of a combat log patch. Muted lines render dimmed;
// Kind tags special lines (currently only "status") so downstream
// consumers can dedupe them.
type Line struct {
	Text  string `json:"text"`
	Muted bool   `json:"muted,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// Patch is the UI update produced by every dispatcher call. The exact
// Russian wording of Status and Lines is part of the contract: the
// narration layer text-matches it.
type Patch struct {
	Status string `json:"status"`
	Open   bool   `json:"open"`
	Reset  bool   `json:"reset,omitempty"`
	Lines  []Line `json:"lines"`
}

// AddLine appends a regular line.
func (p *Patch) AddLine(text string) {
	p.Lines = append(p.Lines, Line{Text: text})
}

// AddMuted appends a muted line.
func (p *Patch) AddMuted(text string) {
	p.Lines = append(p.Lines, Line{Text: text, Muted: true})
}
