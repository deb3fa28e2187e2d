// Package theme holds theme capability descriptors and checks blocks
// against them.
//
// A missing descriptor never blocks anything: every kind is then treated
// as supported.
package theme

import (
	"github.com/flashresume/flashresume/pkg/document"
)

const DefaultMainFile = "main.typ"

// Descriptor is the capability part of a theme configuration.
type Descriptor struct {
	Name          string   `json:"name" yaml:"name" toml:"name" validate:"required"`
	DisplayName   string   `json:"displayName" yaml:"displayName" toml:"displayName"`
	Description   string   `json:"description" yaml:"description" toml:"description"`
	MainFile      string   `json:"mainFile" yaml:"mainFile" toml:"mainFile"`
	CoreFunctions []string `json:"coreFunctions" yaml:"coreFunctions" toml:"coreFunctions" validate:"dive,required"`
	Functions     []string `json:"functions" yaml:"functions" toml:"functions" validate:"dive,required"`
}

// Title is the name shown to users.
func (d *Descriptor) Title() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

// Supports reports whether name is a core or a theme-specific function.
func (d *Descriptor) Supports(name string) bool {
	for _, fn := range d.CoreFunctions {
		if fn == name {
			return true
		}
	}
	for _, fn := range d.Functions {
		if fn == name {
			return true
		}
	}
	return false
}

// Checker resolves kinds to their markup function names through a registry,
// so a descriptor may list either "skill-group" or "skill-item".
type Checker struct {
	registry *document.Registry
}

func NewChecker(registry *document.Registry) *Checker {
	if registry == nil {
		registry = document.DefaultRegistry()
	}
	return &Checker{registry: registry}
}

func (c *Checker) IsSupported(kind document.Kind, d *Descriptor) bool {
	if d == nil {
		return true
	}
	if d.Supports(string(kind)) {
		return true
	}
	if bt, ok := c.registry.Lookup(kind); ok && d.Supports(bt.Function) {
		return true
	}
	return false
}

// Finding is a block using a function the theme does not provide.
type Finding struct {
	BlockID   string             `json:"blockId"`
	Kind      document.Kind      `json:"kind"`
	Title     string             `json:"title"`
	SectionID document.SectionID `json:"sectionId"`
}

type Report struct {
	Theme       string    `json:"theme,omitempty"`
	Checked     int       `json:"checked"`
	Unsupported []Finding `json:"unsupported"`
}

// OK is true when every block is supported.
func (r *Report) OK() bool {
	return len(r.Unsupported) == 0
}

// Supported reports whether the block with id passed the check.
func (r *Report) Supported(id string) bool {
	for _, f := range r.Unsupported {
		if f.BlockID == id {
			return false
		}
	}
	return true
}

// Check classifies blocks in the order given.
func (c *Checker) Check(blocks document.Blocks, d *Descriptor) *Report {
	report := &Report{
		Checked:     len(blocks),
		Unsupported: []Finding{},
	}
	if d != nil {
		report.Theme = d.Title()
	}
	for _, block := range blocks {
		if c.IsSupported(block.Kind, d) {
			continue
		}
		report.Unsupported = append(report.Unsupported, Finding{
			BlockID:   block.ID,
			Kind:      block.Kind,
			Title:     block.Title,
			SectionID: block.SectionID,
		})
	}
	return report
}
