package document

import (
	"github.com/elliotchance/orderedmap"
)

// SectionID names a bucket of blocks in the document.
type SectionID string

const (
	SectionPersonalInfo   SectionID = "personal-info"
	SectionEducation      SectionID = "education"
	SectionExperience     SectionID = "experience"
	SectionProjects       SectionID = "projects"
	SectionSkills         SectionID = "skills"
	SectionCertifications SectionID = "certifications"
	SectionAdditional     SectionID = "additional"
)

func (id SectionID) String() string { return string(id) }

type Section struct {
	ID            SectionID `json:"id"`
	Title         string    `json:"title"`
	AllowMultiple bool      `json:"allowMultiple"`
	// Required is informational. Nothing removes or refuses blocks because of it.
	Required      bool   `json:"required"`
	AcceptedKinds []Kind `json:"acceptedKinds"`
}

func (s Section) Accepts(kind Kind) bool {
	for _, k := range s.AcceptedKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Schema is the ordered set of sections a document is made of. The
// insertion order is the canonical order used when serializing.
//
// A kind is classified into the first section accepting it; kinds no
// section accepts land in the fallback section.
type Schema struct {
	sections *orderedmap.OrderedMap
	byKind   map[Kind]SectionID
	fallback SectionID
}

func NewSchema(fallback SectionID, sections ...Section) *Schema {
	s := &Schema{
		sections: orderedmap.NewOrderedMap(),
		byKind:   make(map[Kind]SectionID),
		fallback: fallback,
	}
	for _, section := range sections {
		if !s.sections.Set(section.ID, section) {
			continue
		}
		for _, kind := range section.AcceptedKinds {
			if _, ok := s.byKind[kind]; !ok {
				s.byKind[kind] = section.ID
			}
		}
	}
	return s
}

// Classify maps a block kind to the section it belongs to.
func (s *Schema) Classify(kind Kind) SectionID {
	if id, ok := s.byKind[kind]; ok {
		return id
	}
	return s.fallback
}

func (s *Schema) Section(id SectionID) (Section, bool) {
	v, ok := s.sections.Get(id)
	if !ok {
		return Section{}, false
	}
	return v.(Section), true
}

// Sections returns all sections in canonical order.
func (s *Schema) Sections() []Section {
	result := make([]Section, 0, s.sections.Len())
	for el := s.sections.Front(); el != nil; el = el.Next() {
		result = append(result, el.Value.(Section))
	}
	return result
}

var defaultSchema = NewSchema(
	SectionAdditional,
	Section{
		ID:            SectionPersonalInfo,
		Title:         "Personal Information",
		AllowMultiple: false,
		Required:      true,
		AcceptedKinds: []Kind{KindPersonalInfo},
	},
	Section{
		ID:            SectionEducation,
		Title:         "Education",
		AllowMultiple: true,
		AcceptedKinds: []Kind{KindEducation, KindGPA},
	},
	Section{
		ID:            SectionExperience,
		Title:         "Work Experience",
		AllowMultiple: true,
		AcceptedKinds: []Kind{KindExperience},
	},
	Section{
		ID:            SectionProjects,
		Title:         "Projects",
		AllowMultiple: true,
		AcceptedKinds: []Kind{KindProject},
	},
	Section{
		ID:            SectionSkills,
		Title:         "Skills & Competencies",
		AllowMultiple: true,
		AcceptedKinds: []Kind{KindSkill, KindSkillGroup},
	},
	Section{
		ID:            SectionCertifications,
		Title:         "Certifications & Awards",
		AllowMultiple: true,
		AcceptedKinds: []Kind{KindCertification},
	},
	Section{
		ID:            SectionAdditional,
		Title:         "Additional Sections",
		AllowMultiple: true,
		AcceptedKinds: []Kind{KindGenericEntry, KindExtracurricular, KindBulletItem},
	},
)

// DefaultSchema returns the built-in résumé layout.
func DefaultSchema() *Schema {
	return defaultSchema
}
