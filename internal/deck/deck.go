package deck

// Slide is the structured content unit produced per slide: a title, an
// ordered list of bullet points and speaker notes. Slides are immutable
// once generated; the assembler only reads them.
type Slide struct {
	Title      string   `json:"title"`
	Bullets    []string `json:"content"`
	Notes      string   `json:"notes"`
	WantsImage bool     `json:"has_image"`
}

// Deck is an ordered sequence of slides for a single generation request.
type Deck struct {
	Topic  string
	Slides []Slide
}
