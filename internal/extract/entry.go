package extract

// Location points at the generator source line that opened an entry.
type Location struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// Entry is one normalized piece of game content, regardless of whether it was
// rebuilt from generator source or read from a snapshot index.
type Entry struct {
	SequenceIndex  int       `json:"index"`
	ID             string    `json:"id"`
	DisplayName    string    `json:"name"`
	RawName        string    `json:"rawName"`
	Description    string    `json:"description,omitempty"`
	SpriteRef      string    `json:"sprite,omitempty"`
	Price          *int      `json:"price,omitempty"`
	IsUnreleased   bool      `json:"isUnreleased"`
	SourceLocation *Location `json:"source,omitempty"`
}
