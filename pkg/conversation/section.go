package conversation

import "fmt"

// Section is a context block placed ahead of the message history when a
// completion request is assembled. Sections are captured once at conversation
// creation time and never re-fetched on later turns.
type Section interface {
	Title() string
	Render() string
}

// CodeSection presents a code snippet, fenced, under a markdown heading.
type CodeSection struct {
	title string
	code  string
}

var _ Section = (*CodeSection)(nil)

func NewCodeSection(title string, code string) *CodeSection {
	return &CodeSection{title: title, code: code}
}

func (s *CodeSection) Title() string {
	return s.title
}

func (s *CodeSection) Render() string {
	return fmt.Sprintf("## %s\n```\n%s\n```", s.title, s.code)
}

// TextSection presents free-form instructions under a markdown heading.
type TextSection struct {
	title string
	text  string
}

var _ Section = (*TextSection)(nil)

func NewTextSection(title string, text string) *TextSection {
	return &TextSection{title: title, text: text}
}

func (s *TextSection) Title() string {
	return s.title
}

func (s *TextSection) Render() string {
	return fmt.Sprintf("## %s\n%s", s.title, s.text)
}
