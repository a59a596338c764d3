// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Slide is one presentation slide. Slides are produced by the formatting
// stage and consumed exactly once by a rendering sink; they are never
// mutated after creation.
type Slide struct {
	// Title is the slide heading: a section display name ("VERSE 1") or,
	// for a title-only slide, the song title. Sinks uppercase it at render
	// time.
	Title string `json:"title" yaml:"title"`

	// Body is zero or more lyric lines joined with newlines. An empty body
	// signals a title-only slide; how that is centered is sink policy.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// Footer is an optional attribution line (the song title) shown small
	// at the bottom of lyric slides.
	Footer string `json:"footer,omitempty" yaml:"footer,omitempty"`
}

// IsTitleOnly reports whether the slide has no lyric body.
func (s Slide) IsTitleOnly() bool {
	return s.Body == ""
}
