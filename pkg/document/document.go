package document

import (
	"go.uber.org/zap"

	"github.com/flashresume/flashresume/pkg/document/identity"
)

type identityResolver interface {
	BlockID(name string) string
}

// ParseResult is the outcome of scanning a document.
type ParseResult struct {
	Blocks Blocks
	// DroppedLines lists 0-based indexes of lines that matched no construct.
	// They only survive in the raw text.
	DroppedLines []int
	// Unterminated lists ids of blocks whose delimiters never balanced.
	Unterminated []string
	Headings     int
}

type Parser struct {
	registry         *Registry
	schema           *Schema
	identityResolver identityResolver
	logger           *zap.Logger
}

type Option func(*Parser)

func WithRegistry(registry *Registry) Option {
	return func(p *Parser) {
		p.registry = registry
	}
}

func WithSchema(schema *Schema) Option {
	return func(p *Parser) {
		p.schema = schema
	}
}

func WithIdentityResolver(resolver identityResolver) Option {
	return func(p *Parser) {
		p.identityResolver = resolver
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{}

	for _, opt := range opts {
		opt(p)
	}

	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	if p.schema == nil {
		p.schema = DefaultSchema()
	}
	if p.identityResolver == nil {
		p.identityResolver = identity.NewResolver(identity.DefaultStrategy)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	return p
}

// Parse never fails. Malformed input degrades into dropped lines or
// blocks that run to the end of the text.
func (p *Parser) Parse(text string) *ParseResult {
	s := newScanner(text, p.registry)
	runScanner(s, scanTop)

	result := &ParseResult{
		DroppedLines: s.dropped,
		Headings:     s.headings,
	}
	orders := make(map[SectionID]int)

	for _, sp := range s.spans {
		kind := sp.blockType.Kind
		sectionID := p.schema.Classify(kind)

		block := &Block{
			ID:        p.identityResolver.BlockID(string(kind)),
			Kind:      kind,
			Title:     p.registry.Label(kind),
			Body:      s.text(sp),
			SectionID: sectionID,
			Order:     orders[sectionID],
		}
		orders[sectionID]++

		if !sp.terminated {
			result.Unterminated = append(result.Unterminated, block.ID)
			p.logger.Debug(
				"construct not terminated, consumed to end of text",
				zap.String("kind", kind.String()),
				zap.Int("line", sp.start+1),
			)
		}

		result.Blocks = append(result.Blocks, block)
	}

	if len(result.DroppedLines) > 0 {
		p.logger.Debug("dropped unrecognized lines", zap.Ints("lines", result.DroppedLines))
	}
	p.logger.Debug(
		"parsed document",
		zap.Int("blocks", len(result.Blocks)),
		zap.Int("lines", len(s.lines)),
	)

	return result
}

// Parse is a shorthand for NewParser(opts...).Parse(text).Blocks.
func Parse(text string, opts ...Option) Blocks {
	return NewParser(opts...).Parse(text).Blocks
}
