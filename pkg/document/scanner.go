package document

import (
	"regexp"
	"strings"
)

// span is a construct found by the scanner. start and end are inclusive
// 0-based line indexes.
type span struct {
	blockType  BlockType
	start      int
	end        int
	terminated bool
}

// scanner walks physical lines and emits spans. It is driven by state
// functions, each returning the next state, until a state returns nil.
type scanner struct {
	lines    []string
	registry *Registry

	pos     int
	current BlockType
	spans   []span

	dropped  []int
	headings int
}

type scanStateFunc func(*scanner) scanStateFunc

var (
	// #name( or #name[ at the start of a trimmed line.
	invocationHead = regexp.MustCompile(`^#([A-Za-z_][A-Za-z0-9_-]*)([(\[])`)
	// #let name followed by anything that is not part of an identifier.
	declarationHead = regexp.MustCompile(`^#let\s+([A-Za-z_][A-Za-z0-9_-]*)(?:[^A-Za-z0-9_-]|$)`)
)

var boilerplatePrefixes = []string{
	"//",
	"#import",
	"#let config",
	"#show:",
}

const headingPrefix = "= "

func newScanner(text string, registry *Registry) *scanner {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &scanner{
		lines:    strings.Split(text, "\n"),
		registry: registry,
	}
}

func runScanner(s *scanner, state scanStateFunc) {
	for state != nil {
		state = state(s)
	}
}

func isBoilerplate(line string) bool {
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func isHeading(line string) bool {
	return strings.HasPrefix(line, headingPrefix) && len(line) > len(headingPrefix)
}

func scanTop(s *scanner) scanStateFunc {
	for s.pos < len(s.lines) {
		line := strings.TrimSpace(s.lines[s.pos])

		switch {
		case line == "" || isBoilerplate(line):
			s.pos++
			continue
		case isHeading(line):
			s.headings++
			s.pos++
			continue
		}

		if m := declarationHead.FindStringSubmatch(line); m != nil {
			if t, ok := s.registry.LookupFunction(m[1]); ok && t.Style == DeclarationStyle {
				s.current = t
				return scanDelimited('(', ')')
			}
		}

		if m := invocationHead.FindStringSubmatch(line); m != nil {
			if t, ok := s.registry.LookupFunction(m[1]); ok && t.Style != DeclarationStyle {
				s.current = t
				switch {
				case t.Style == SingleLineStyle:
					return scanSingleLine
				case m[2] == "[":
					return scanDelimited('[', ']')
				default:
					return scanDelimited('(', ')')
				}
			}
		}

		s.dropped = append(s.dropped, s.pos)
		s.pos++
	}
	return nil
}

func scanSingleLine(s *scanner) scanStateFunc {
	s.emit(s.pos, true)
	return scanTop
}

// scanDelimited counts open and close runes from the current line on.
// The construct ends on the first line where the depth, having been
// positive, drops to zero or below; an over-closing line ends it too.
// Without such a line the construct runs to the end of the text.
func scanDelimited(open, close rune) scanStateFunc {
	return func(s *scanner) scanStateFunc {
		depth := 0
		opened := false

		for i := s.pos; i < len(s.lines); i++ {
			for _, r := range s.lines[i] {
				switch r {
				case open:
					depth++
					opened = true
				case close:
					depth--
				}
			}
			if opened && depth <= 0 {
				s.emit(i, true)
				return scanTop
			}
		}

		end := len(s.lines) - 1
		for end > s.pos && strings.TrimSpace(s.lines[end]) == "" {
			end--
		}
		s.emit(end, false)
		return nil
	}
}

func (s *scanner) emit(end int, terminated bool) {
	s.spans = append(s.spans, span{
		blockType:  s.current,
		start:      s.pos,
		end:        end,
		terminated: terminated,
	})
	s.current = BlockType{}
	s.pos = end + 1
}

func (s *scanner) text(sp span) string {
	return strings.Join(s.lines[sp.start:sp.end+1], "\n")
}
