package document

// InvocationStyle tells the scanner how a construct is terminated.
type InvocationStyle int

const (
	// DeclarationStyle is a "#let name = (...)" binding.
	DeclarationStyle InvocationStyle = iota + 1
	// ParenStyle is a "#name(...)" call spanning until parentheses balance.
	ParenStyle
	// BracketStyle is a "#name[...]" content block spanning until brackets balance.
	BracketStyle
	// SingleLineStyle is a call that always fits on its first line.
	SingleLineStyle
)

// BlockType describes a kind of block: how it is labelled in the editor,
// which markup function introduces it and what a fresh block contains.
type BlockType struct {
	Kind        Kind
	Label       string
	Icon        string
	Description string
	Function    string
	Style       InvocationStyle
	Template    string
}

// Signature is the markup head, e.g. "#education".
func (t BlockType) Signature() string {
	if t.Style == DeclarationStyle {
		return "#let " + t.Function
	}
	return "#" + t.Function
}

// Registry is an immutable lookup table of block types.
type Registry struct {
	types      []BlockType
	byKind     map[Kind]int
	byFunction map[string]int
}

func NewRegistry(types ...BlockType) *Registry {
	r := &Registry{
		types:      make([]BlockType, 0, len(types)),
		byKind:     make(map[Kind]int, len(types)),
		byFunction: make(map[string]int, len(types)),
	}
	for _, t := range types {
		if _, ok := r.byKind[t.Kind]; ok {
			continue
		}
		r.byKind[t.Kind] = len(r.types)
		r.byFunction[t.Function] = len(r.types)
		r.types = append(r.types, t)
	}
	return r
}

func (r *Registry) Lookup(kind Kind) (BlockType, bool) {
	idx, ok := r.byKind[kind]
	if !ok {
		return BlockType{}, false
	}
	return r.types[idx], true
}

// LookupFunction finds a block type by its markup function name.
func (r *Registry) LookupFunction(name string) (BlockType, bool) {
	idx, ok := r.byFunction[name]
	if !ok {
		return BlockType{}, false
	}
	return r.types[idx], true
}

// Label returns the default title for kind.
func (r *Registry) Label(kind Kind) string {
	if t, ok := r.Lookup(kind); ok {
		return t.Label
	}
	return "Content Block"
}

// Types returns all block types in definition order.
func (r *Registry) Types() []BlockType {
	result := make([]BlockType, len(r.types))
	copy(result, r.types)
	return result
}

var defaultRegistry = NewRegistry(
	BlockType{
		Kind:        KindPersonalInfo,
		Label:       "Personal Information",
		Icon:        "user",
		Description: "Your contact details and basic information",
		Function:    "author-info",
		Style:       DeclarationStyle,
		Template: `#let author-info = (
  firstname: "Your First",
  lastname: "Name",
  email: "your.email@example.com",
  phone: "(+1) 555-123-4567",
  homepage: "https://yourwebsite.com",
  github: "yourusername",
  linkedin: "yourprofile",
  address: "Your Address",
  positions: (
    "Your Job Title",
    "Another Role",
  ),
)`,
	},
	BlockType{
		Kind:        KindEducation,
		Label:       "Education",
		Icon:        "graduation-cap",
		Description: "School, degree, dates, and academic details",
		Function:    "education",
		Style:       ParenStyle,
		Template: `#education(
  school: "University Name",
  degree: "Your Degree",
  date: "Start Date - End Date",
  location: "City, State",
  gpa: "3.8/4.0",
  honors: "Academic Honors",
  courses: "Relevant Coursework",
)`,
	},
	BlockType{
		Kind:        KindExperience,
		Label:       "Experience",
		Icon:        "briefcase",
		Description: "Work experience with company and role details",
		Function:    "experience",
		Style:       ParenStyle,
		Template: `#experience(
  company: "Company Name",
  position: "Your Position",
  date: "Start Date - End Date",
  location: "City, State",
  description: [
    - Your key accomplishment
    - Another achievement
    - Important responsibility
  ],
)`,
	},
	BlockType{
		Kind:        KindProject,
		Label:       "Project",
		Icon:        "code",
		Description: "Personal or professional projects",
		Function:    "project",
		Style:       ParenStyle,
		Template: `#project(
  name: "Project Name",
  date: "Date Range",
  link: "github.com/username/project",
  description: [
    - Project description
    - Key features or achievements
    - Technologies used
  ],
)`,
	},
	BlockType{
		Kind:        KindSkill,
		Label:       "Skills",
		Icon:        "award",
		Description: "Technical and professional skills",
		Function:    "skill",
		Style:       ParenStyle,
		Template: `#skill(
  category: "Skill Category",
  skills: "Skill 1, Skill 2, Skill 3, Skill 4",
)`,
	},
	BlockType{
		Kind:        KindSkillGroup,
		Label:       "Skill Item",
		Icon:        "hash",
		Description: "Organized skill categories with multiple items",
		Function:    "skill-item",
		Style:       ParenStyle,
		Template: `#skill-item(
  category: "Skill Category",
  items: ("Item 1", "Item 2", "Item 3"),
)`,
	},
	BlockType{
		Kind:        KindCertification,
		Label:       "Certification",
		Icon:        "award",
		Description: "Professional certifications",
		Function:    "certification",
		Style:       ParenStyle,
		Template: `#certification(
  certification: "Certification Name",
  date: "Date Obtained",
)`,
	},
	BlockType{
		Kind:        KindGenericEntry,
		Label:       "Entry",
		Icon:        "file-text",
		Description: "General entry with title, location, date",
		Function:    "entry",
		Style:       ParenStyle,
		Template: `#entry(
  title: "Entry Title",
  location: "Location/Organization",
  date: "Date",
  description: "Brief description of the entry",
  title-link: "https://optional-link.com",
)`,
	},
	BlockType{
		Kind:        KindBulletItem,
		Label:       "Item",
		Icon:        "hash",
		Description: "Bullet points or descriptions",
		Function:    "item",
		Style:       BracketStyle,
		Template: `#item[
  - Bullet point item
  - Another important point
  - Additional details
]`,
	},
	BlockType{
		Kind:        KindGPA,
		Label:       "GPA",
		Icon:        "calculator",
		Description: "Display GPA with numerator/denominator",
		Function:    "gpa",
		Style:       SingleLineStyle,
		Template:    `#gpa(3.8, 4.0)`,
	},
	BlockType{
		Kind:        KindExtracurricular,
		Label:       "Extracurriculars",
		Icon:        "trophy",
		Description: "Activities and organizations",
		Function:    "extracurriculars",
		Style:       ParenStyle,
		Template: `#extracurriculars(
  organization: "Organization Name",
  role: "Your Role",
  date: "Date Range",
  description: [
    - Your contributions
    - Achievements or impact
  ],
)`,
	},
)

// DefaultRegistry returns the built-in block types.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
