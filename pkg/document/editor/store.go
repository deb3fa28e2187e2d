package editor

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/flashresume/flashresume/pkg/document"
	"github.com/flashresume/flashresume/pkg/document/identity"
	"github.com/flashresume/flashresume/pkg/theme"
)

var (
	ErrUnknownSection  = errors.New("unknown section")
	ErrUnknownKind     = errors.New("unknown block kind")
	ErrKindNotAccepted = errors.New("section does not accept block kind")
	ErrSectionFull     = errors.New("section already holds a block")
	ErrBlockNotFound   = errors.New("block not found")
	ErrIndexOutOfRange = errors.New("index out of range")
)

type identityResolver interface {
	BlockID(name string) string
}

type resettable interface {
	Reset()
}

// Store holds the blocks of one editing session. Every mutation
// regenerates the canonical text and returns it.
//
// Store is not safe for concurrent use.
type Store struct {
	registry *document.Registry
	schema   *document.Schema
	resolver identityResolver
	logger   *zap.Logger
	onChange func([]byte)

	blocks document.Blocks
	text   []byte
}

type StoreOption func(*Store)

func WithRegistry(registry *document.Registry) StoreOption {
	return func(s *Store) {
		s.registry = registry
	}
}

func WithSchema(schema *document.Schema) StoreOption {
	return func(s *Store) {
		s.schema = schema
	}
}

func WithIdentityResolver(resolver identityResolver) StoreOption {
	return func(s *Store) {
		s.resolver = resolver
	}
}

func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithOnChange registers fn to receive the canonical text after every
// mutation.
func WithOnChange(fn func([]byte)) StoreOption {
	return func(s *Store) {
		s.onChange = fn
	}
}

// NewStore creates an empty store. Use [Store.ReparseFromText] to load an
// existing document.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = document.DefaultRegistry()
	}
	if s.schema == nil {
		s.schema = document.DefaultSchema()
	}
	if s.resolver == nil {
		s.resolver = identity.NewResolver(identity.DefaultStrategy)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.text = Serialize(nil, s.schema)

	return s
}

// Blocks returns a copy of all blocks in insertion order.
func (s *Store) Blocks() document.Blocks {
	return s.blocks.Clone()
}

// Block returns a copy of the block with the given id.
func (s *Store) Block(id string) (*document.Block, bool) {
	block := s.blocks.Find(id)
	if block == nil {
		return nil, false
	}
	return block.Clone(), true
}

// Section returns copies of the blocks in the section sorted by order.
func (s *Store) Section(id document.SectionID) document.Blocks {
	return s.blocks.InSection(id).Clone()
}

func (s *Store) Schema() *document.Schema { return s.schema }

// Text returns the canonical text of the current blocks.
func (s *Store) Text() []byte {
	return append([]byte(nil), s.text...)
}

// Check reports blocks the theme described by d cannot render.
func (s *Store) Check(d *theme.Descriptor) *theme.Report {
	return theme.NewChecker(s.registry).Check(s.blocks, d)
}

// AddBlock appends a block of the given kind, seeded with its template, to
// the end of the section. On error the store is unchanged.
func (s *Store) AddBlock(sectionID document.SectionID, kind document.Kind) (*document.Block, []byte, error) {
	section, ok := s.schema.Section(sectionID)
	if !ok {
		return nil, nil, errors.Wrapf(ErrUnknownSection, "section %q", sectionID)
	}

	blockType, ok := s.registry.Lookup(kind)
	if !ok {
		return nil, nil, errors.Wrapf(ErrUnknownKind, "kind %q", kind)
	}

	if !section.Accepts(kind) {
		return nil, nil, errors.Wrapf(ErrKindNotAccepted, "section %q, kind %q", sectionID, kind)
	}

	if !section.AllowMultiple && len(s.blocks.InSection(sectionID)) > 0 {
		s.logger.Info("refused block for single-block section", zap.String("section", sectionID.String()))
		return nil, nil, errors.Wrapf(ErrSectionFull, "section %q", sectionID)
	}

	block := &document.Block{
		ID:        s.resolver.BlockID(kind.String()),
		Kind:      kind,
		Title:     blockType.Label,
		Body:      blockType.Template,
		SectionID: sectionID,
		Order:     s.blocks.NextOrder(sectionID),
	}
	s.blocks = append(s.blocks, block)

	s.logger.Debug(
		"added block",
		zap.String("id", block.ID),
		zap.String("kind", kind.String()),
		zap.String("section", sectionID.String()),
		zap.Int("order", block.Order),
	)

	return block.Clone(), s.commit(), nil
}

// UpdateBlock replaces the title and body of a block. Kind and section
// cannot change.
func (s *Store) UpdateBlock(id, title, body string) ([]byte, error) {
	block := s.blocks.Find(id)
	if block == nil {
		return nil, errors.Wrapf(ErrBlockNotFound, "id %q", id)
	}

	block.Title = title
	block.Body = body

	s.logger.Debug("updated block", zap.String("id", id))

	return s.commit(), nil
}

// DeleteBlock removes a block. Orders of the remaining blocks are kept as
// they are.
func (s *Store) DeleteBlock(id string) ([]byte, error) {
	idx := -1
	for i, block := range s.blocks {
		if block.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.Wrapf(ErrBlockNotFound, "id %q", id)
	}

	s.blocks = append(s.blocks[:idx:idx], s.blocks[idx+1:]...)

	s.logger.Debug("deleted block", zap.String("id", id))

	return s.commit(), nil
}

// MoveBlock moves a block to position index within its section. Orders of
// the section are rewritten to 0..n-1.
func (s *Store) MoveBlock(id string, index int) ([]byte, error) {
	block := s.blocks.Find(id)
	if block == nil {
		return nil, errors.Wrapf(ErrBlockNotFound, "id %q", id)
	}

	siblings := s.blocks.InSection(block.SectionID)
	if index < 0 || index >= len(siblings) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, section %q has %d blocks", index, block.SectionID, len(siblings))
	}

	reordered := make(document.Blocks, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID != id {
			reordered = append(reordered, sibling)
		}
	}
	reordered = append(reordered[:index], append(document.Blocks{block}, reordered[index:]...)...)

	for i, sibling := range reordered {
		sibling.Order = i
	}

	s.logger.Debug("moved block", zap.String("id", id), zap.Int("index", index))

	return s.commit(), nil
}

// ReparseFromText discards all blocks and identities and loads the blocks
// parsed from text. A resolver with a Reset method is reset first.
func (s *Store) ReparseFromText(text string) []byte {
	if r, ok := s.resolver.(resettable); ok {
		r.Reset()
	}

	parser := document.NewParser(
		document.WithRegistry(s.registry),
		document.WithSchema(s.schema),
		document.WithIdentityResolver(s.resolver),
		document.WithLogger(s.logger),
	)

	result := parser.Parse(text)
	s.blocks = result.Blocks

	if len(result.DroppedLines) > 0 || len(result.Unterminated) > 0 {
		s.logger.Info(
			"text did not parse cleanly",
			zap.Int("dropped_lines", len(result.DroppedLines)),
			zap.Strings("unterminated", result.Unterminated),
		)
	}

	return s.commit()
}

func (s *Store) commit() []byte {
	s.text = Serialize(s.blocks, s.schema)
	text := s.Text()
	if s.onChange != nil {
		s.onChange(s.Text())
	}
	return text
}
