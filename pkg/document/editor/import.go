package editor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/flashresume/flashresume/pkg/document"
)

// ResumeData is a résumé described as structured data, as produced by the
// JSON résumé form.
type ResumeData struct {
	PersonalInfo PersonalInfo    `yaml:"personalInfo" validate:"required"`
	Sections     []ResumeSection `yaml:"sections" validate:"dive"`
	Theme        string          `yaml:"theme"`
}

type PersonalInfo struct {
	Firstname string   `yaml:"firstname" validate:"required"`
	Lastname  string   `yaml:"lastname" validate:"required"`
	Email     string   `yaml:"email" validate:"required"`
	Homepage  string   `yaml:"homepage"`
	Phone     string   `yaml:"phone"`
	GitHub    string   `yaml:"github"`
	Twitter   string   `yaml:"twitter"`
	Scholar   string   `yaml:"scholar"`
	ORCID     string   `yaml:"orcid"`
	Birth     string   `yaml:"birth"`
	LinkedIn  string   `yaml:"linkedin"`
	Address   string   `yaml:"address"`
	Positions []string `yaml:"positions"`
}

// fields returns the non-empty personal details in rendering order.
func (p PersonalInfo) fields() Fields {
	fields := Fields{
		{Key: "firstname", Value: p.Firstname},
		{Key: "lastname", Value: p.Lastname},
		{Key: "email", Value: p.Email},
	}
	optional := []Field{
		{Key: "homepage", Value: p.Homepage},
		{Key: "phone", Value: p.Phone},
		{Key: "github", Value: p.GitHub},
		{Key: "twitter", Value: p.Twitter},
		{Key: "scholar", Value: p.Scholar},
		{Key: "orcid", Value: p.ORCID},
		{Key: "birth", Value: p.Birth},
		{Key: "linkedin", Value: p.LinkedIn},
		{Key: "address", Value: p.Address},
	}
	for _, f := range optional {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	if len(p.Positions) > 0 {
		positions := make([]interface{}, 0, len(p.Positions))
		for _, pos := range p.Positions {
			positions = append(positions, pos)
		}
		fields = append(fields, Field{Key: "positions", Value: tuple(positions)})
	}
	return fields
}

type ResumeSection struct {
	Type  string              `yaml:"type"`
	Title string              `yaml:"title"`
	Items []ResumeSectionItem `yaml:"items" validate:"dive"`
}

// ResumeSectionItem is one call of a markup function. Type is the function
// name, e.g. "education" or "skill-item".
type ResumeSectionItem struct {
	Type string `yaml:"type" validate:"required"`
	Data Fields `yaml:"data"`
}

type Field struct {
	Key   string
	Value interface{}
}

// Fields keeps the arguments of a call in the order they were written.
type Fields []Field

func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: data must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return errors.WithStack(err)
		}
		*f = append(*f, Field{Key: node.Content[i].Value, Value: value})
	}
	return nil
}

// tuple is rendered as a parenthesized array even when it holds strings.
type tuple []interface{}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseResume decodes a JSON (or YAML) résumé and validates it.
func ParseResume(data []byte) (*ResumeData, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var resume ResumeData
	if err := decoder.Decode(&resume); err != nil {
		return nil, errors.Wrap(err, "failed to decode résumé")
	}

	if err := validate.Struct(&resume); err != nil {
		return nil, errors.Wrap(err, "invalid résumé")
	}

	return &resume, nil
}

// Import appends one block per personal info and section item of data.
// Sections are chosen by classifying each item's kind; the titles in data
// are not used. On error the store is left as it was.
func (s *Store) Import(data *ResumeData) ([]byte, error) {
	kinds := make([][]document.Kind, len(data.Sections))
	for i, section := range data.Sections {
		for _, item := range section.Items {
			blockType, ok := s.registry.LookupFunction(item.Type)
			if !ok {
				return nil, errors.Wrapf(ErrUnknownKind, "section %q: function %q", section.Title, item.Type)
			}
			kinds[i] = append(kinds[i], blockType.Kind)
		}
	}

	saved := s.blocks.Clone()

	text, err := s.importBlocks(data, kinds)
	if err != nil {
		s.blocks = saved
		s.commit()
		return nil, err
	}

	return text, nil
}

func (s *Store) importBlocks(data *ResumeData, kinds [][]document.Kind) ([]byte, error) {
	text, err := s.importBlock(document.KindPersonalInfo, data.PersonalInfo.fields())
	if err != nil {
		return nil, err
	}

	for i, section := range data.Sections {
		for j, item := range section.Items {
			kind := kinds[i][j]
			if id := s.schema.Classify(kind); section.Type != "" && section.Type != id.String() {
				s.logger.Debug(
					"importing item into classified section",
					zap.String("requested", section.Type),
					zap.String("section", id.String()),
					zap.String("kind", kind.String()),
				)
			}

			text, err = s.importBlock(kind, item.Data)
			if err != nil {
				return nil, err
			}
		}
	}

	return text, nil
}

func (s *Store) importBlock(kind document.Kind, fields Fields) ([]byte, error) {
	blockType, _ := s.registry.Lookup(kind)

	block, _, err := s.AddBlock(s.schema.Classify(kind), kind)
	if err != nil {
		return nil, err
	}

	return s.UpdateBlock(block.ID, block.Title, renderCall(blockType, fields))
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// renderCall writes a multi-line call with one argument per line. Lists of
// strings become content lists, other lists become arrays. Single-line
// kinds get all arguments on the first line.
func renderCall(blockType document.BlockType, fields Fields) string {
	var b strings.Builder

	if blockType.Style == document.SingleLineStyle {
		args := make([]string, 0, len(fields))
		for _, f := range fields {
			if f.Value != nil {
				args = append(args, f.Key+": "+argument(f.Value))
			}
		}
		return blockType.Signature() + "(" + strings.Join(args, ", ") + ")"
	}

	if blockType.Style == document.DeclarationStyle {
		b.WriteString(blockType.Signature() + " = (\n")
	} else {
		b.WriteString(blockType.Signature() + "(\n")
	}

	for _, f := range fields {
		list, ok := f.Value.([]interface{})
		switch {
		case f.Value == nil:
			continue
		case ok && isStringList(list):
			fmt.Fprintf(&b, "  %s: [\n", f.Key)
			for _, item := range list {
				fmt.Fprintf(&b, "    - %v\n", item)
			}
			b.WriteString("  ],\n")
		default:
			fmt.Fprintf(&b, "  %s: %s,\n", f.Key, argument(f.Value))
		}
	}

	b.WriteString(")")

	return b.String()
}

// argument renders a value as a quoted string or an array of them.
func argument(v interface{}) string {
	switch v := v.(type) {
	case tuple:
		return "(" + joinQuoted(v) + ")"
	case []interface{}:
		return "(" + joinQuoted(v) + ")"
	default:
		return quote(v)
	}
}

func isStringList(values []interface{}) bool {
	if len(values) == 0 {
		return false
	}
	_, ok := values[0].(string)
	return ok
}

func joinQuoted(values []interface{}) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, quote(v))
	}
	return strings.Join(quoted, ", ")
}

func quote(v interface{}) string {
	return `"` + stringEscaper.Replace(fmt.Sprint(v)) + `"`
}
