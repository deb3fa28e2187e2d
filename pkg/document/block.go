package document

import (
	"sort"
)

// Kind identifies which markup construct a Block represents.
type Kind string

const (
	KindPersonalInfo    Kind = "personal-info"
	KindEducation       Kind = "education"
	KindExperience      Kind = "experience"
	KindProject         Kind = "project"
	KindSkill           Kind = "skill"
	KindSkillGroup      Kind = "skill-group"
	KindCertification   Kind = "certification"
	KindGenericEntry    Kind = "generic-entry"
	KindBulletItem      Kind = "bullet-item"
	KindGPA             Kind = "gpa"
	KindExtracurricular Kind = "extracurricular"
)

func (k Kind) String() string { return string(k) }

// Block is a typed unit of résumé content backed by a markup fragment.
type Block struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	SectionID SectionID `json:"sectionId"`
	Order     int       `json:"order"`
}

func (b *Block) Clone() *Block {
	clone := *b
	return &clone
}

type Blocks []*Block

// InSection returns the blocks belonging to id sorted by Order.
// Blocks sharing an Order keep their relative position.
func (b Blocks) InSection(id SectionID) Blocks {
	var result Blocks
	for _, block := range b {
		if block.SectionID == id {
			result = append(result, block)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})
	return result
}

// Find returns the block with the given id or nil.
func (b Blocks) Find(id string) *Block {
	for _, block := range b {
		if block.ID == id {
			return block
		}
	}
	return nil
}

func (b Blocks) Clone() Blocks {
	if b == nil {
		return nil
	}
	result := make(Blocks, 0, len(b))
	for _, block := range b {
		result = append(result, block.Clone())
	}
	return result
}

// NextOrder returns the order a new block appended to id receives.
// It is the number of blocks already in the section unless a gap left by
// a deletion would make that value collide with an existing order.
func (b Blocks) NextOrder(id SectionID) int {
	count, next := 0, 0
	for _, block := range b {
		if block.SectionID != id {
			continue
		}
		count++
		if block.Order >= next {
			next = block.Order + 1
		}
	}
	return max(count, next)
}
