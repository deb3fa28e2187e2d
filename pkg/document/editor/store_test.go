package editor

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/flashresume/flashresume/pkg/document"
	"github.com/flashresume/flashresume/pkg/document/identity"
	"github.com/flashresume/flashresume/pkg/theme"
)

func newTestStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	opts = append([]StoreOption{
		WithIdentityResolver(identity.NewResolver(identity.SequentialStrategy)),
		WithLogger(zaptest.NewLogger(t)),
	}, opts...)
	return NewStore(opts...)
}

func blockIDs(blocks document.Blocks) []string {
	var result []string
	for _, b := range blocks {
		result = append(result, b.ID)
	}
	return result
}

func TestStore_AddBlock(t *testing.T) {
	t.Run("SeedsTemplate", func(t *testing.T) {
		store := newTestStore(t)

		block, text, err := store.AddBlock(document.SectionEducation, document.KindEducation)
		require.NoError(t, err)

		blockType, _ := document.DefaultRegistry().Lookup(document.KindEducation)
		assert.Equal(t, "education", block.ID)
		assert.Equal(t, "Education", block.Title)
		assert.Equal(t, blockType.Template, block.Body)
		assert.Equal(t, document.SectionEducation, block.SectionID)
		assert.Equal(t, 0, block.Order)
		assert.Contains(t, string(text), "= Education\n\n"+blockType.Template+"\n\n")
		assert.Equal(t, text, store.Text())
	})

	t.Run("OrderStability", func(t *testing.T) {
		store := newTestStore(t)

		for i := 0; i < 3; i++ {
			_, _, err := store.AddBlock(document.SectionProjects, document.KindProject)
			require.NoError(t, err)
		}

		assert.Equal(t, []string{"project", "project-2", "project-3"}, blockIDs(store.Section(document.SectionProjects)))

		_, err := store.DeleteBlock("project-2")
		require.NoError(t, err)

		remaining := store.Section(document.SectionProjects)
		assert.Equal(t, []string{"project", "project-3"}, blockIDs(remaining))
		assert.Equal(t, 0, remaining[0].Order)
		assert.Equal(t, 2, remaining[1].Order)

		block, _, err := store.AddBlock(document.SectionProjects, document.KindProject)
		require.NoError(t, err)
		assert.Equal(t, 3, block.Order)
		assert.Equal(t, []string{"project", "project-3", "project-4"}, blockIDs(store.Section(document.SectionProjects)))
	})

	t.Run("Singleton", func(t *testing.T) {
		var changes int
		store := newTestStore(t, WithOnChange(func([]byte) { changes++ }))

		_, _, err := store.AddBlock(document.SectionPersonalInfo, document.KindPersonalInfo)
		require.NoError(t, err)
		before := store.Text()

		_, text, err := store.AddBlock(document.SectionPersonalInfo, document.KindPersonalInfo)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSectionFull))
		assert.Nil(t, text)
		assert.Len(t, store.Blocks(), 1)
		assert.Equal(t, before, store.Text())
		assert.Equal(t, 1, changes)
	})

	t.Run("UnknownSection", func(t *testing.T) {
		store := newTestStore(t)
		_, _, err := store.AddBlock("hobbies", document.KindBulletItem)
		assert.True(t, errors.Is(err, ErrUnknownSection))
		assert.Empty(t, store.Blocks())
	})

	t.Run("UnknownKind", func(t *testing.T) {
		store := newTestStore(t)
		_, _, err := store.AddBlock(document.SectionAdditional, "haiku")
		assert.True(t, errors.Is(err, ErrUnknownKind))
	})

	t.Run("KindNotAccepted", func(t *testing.T) {
		store := newTestStore(t)
		_, _, err := store.AddBlock(document.SectionSkills, document.KindExperience)
		assert.True(t, errors.Is(err, ErrKindNotAccepted))
		assert.Empty(t, store.Blocks())
	})
}

func TestStore_UpdateBlock(t *testing.T) {
	store := newTestStore(t)

	block, _, err := store.AddBlock(document.SectionSkills, document.KindSkill)
	require.NoError(t, err)

	text, err := store.UpdateBlock(block.ID, "Languages", `#skill(category: "Languages", skills: "Go")`)
	require.NoError(t, err)
	assert.Contains(t, string(text), "= Skills & Competencies\n\n#skill(category: \"Languages\", skills: \"Go\")\n\n")

	updated, ok := store.Block(block.ID)
	require.True(t, ok)
	assert.Equal(t, "Languages", updated.Title)
	assert.Equal(t, document.KindSkill, updated.Kind)
	assert.Equal(t, document.SectionSkills, updated.SectionID)

	_, err = store.UpdateBlock("missing", "", "")
	assert.True(t, errors.Is(err, ErrBlockNotFound))
}

func TestStore_DeleteBlock(t *testing.T) {
	store := newTestStore(t)

	block, _, err := store.AddBlock(document.SectionCertifications, document.KindCertification)
	require.NoError(t, err)

	text, err := store.DeleteBlock(block.ID)
	require.NoError(t, err)
	assert.NotContains(t, string(text), "= Certifications & Awards")

	_, err = store.DeleteBlock(block.ID)
	assert.True(t, errors.Is(err, ErrBlockNotFound))
}

func TestStore_MoveBlock(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 3; i++ {
		_, _, err := store.AddBlock(document.SectionAdditional, document.KindBulletItem)
		require.NoError(t, err)
	}
	_, _, err := store.AddBlock(document.SectionAdditional, document.KindGenericEntry)
	require.NoError(t, err)

	_, err = store.MoveBlock("generic-entry", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"generic-entry", "bullet-item", "bullet-item-2", "bullet-item-3"}, blockIDs(store.Section(document.SectionAdditional)))

	_, err = store.MoveBlock("bullet-item", 3)
	require.NoError(t, err)
	section := store.Section(document.SectionAdditional)
	assert.Equal(t, []string{"generic-entry", "bullet-item-2", "bullet-item-3", "bullet-item"}, blockIDs(section))
	for i, b := range section {
		assert.Equal(t, i, b.Order)
	}

	_, err = store.MoveBlock("generic-entry", 4)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	_, err = store.MoveBlock("missing", 0)
	assert.True(t, errors.Is(err, ErrBlockNotFound))
}

func TestStore_ReparseFromText(t *testing.T) {
	var last []byte
	store := newTestStore(t, WithOnChange(func(text []byte) { last = text }))

	_, _, err := store.AddBlock(document.SectionProjects, document.KindProject)
	require.NoError(t, err)

	text := store.ReparseFromText("= Education\n#education(school: \"X\")\n#gpa(3.9, 4.0)\n")
	assert.Equal(t, text, last)
	assert.Empty(t, store.Section(document.SectionProjects))

	blocks := store.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, document.KindEducation, blocks[0].Kind)
	assert.Equal(t, document.KindGPA, blocks[1].Kind)
	assert.Equal(t, 1, blocks[1].Order)

	assert.Equal(t, string(text), string(store.ReparseFromText(string(text))))
}

func TestStore_Check(t *testing.T) {
	store := newTestStore(t)
	_, _, err := store.AddBlock(document.SectionEducation, document.KindGPA)
	require.NoError(t, err)
	_, _, err = store.AddBlock(document.SectionEducation, document.KindEducation)
	require.NoError(t, err)

	report := store.Check(&theme.Descriptor{Name: "plain", CoreFunctions: []string{"education"}})
	assert.False(t, report.OK())
	require.Len(t, report.Unsupported, 1)
	assert.Equal(t, "gpa", report.Unsupported[0].BlockID)

	assert.True(t, store.Check(nil).OK())
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := newTestStore(t)
	block, _, err := store.AddBlock(document.SectionSkills, document.KindSkill)
	require.NoError(t, err)

	block.Body = "mutated"
	store.Blocks()[0].Body = "mutated"
	store.Section(document.SectionSkills)[0].Body = "mutated"

	stored, _ := store.Block(block.ID)
	assert.NotEqual(t, "mutated", stored.Body)
}

func TestStore_TextIsStableUnderReparse(t *testing.T) {
	store := newTestStore(t)
	schema := store.Schema()

	var blocks []*document.Block
	for _, blockType := range document.DefaultRegistry().Types() {
		block, _, err := store.AddBlock(schema.Classify(blockType.Kind), blockType.Kind)
		require.NoError(t, err, blockType.Kind)
		blocks = append(blocks, block)
	}

	text, err := store.UpdateBlock(blocks[1].ID, "Education", "#education(\n  school: \"Imperial College\",\n  date: \"2019\",\n)")
	require.NoError(t, err)

	parsed := parseSequential(t, string(text))
	require.Len(t, parsed, len(blocks))
	assert.Equal(t, string(text), string(Serialize(parsed, schema)))

	reparsed := newTestStore(t)
	assert.Equal(t, string(text), string(reparsed.ReparseFromText(string(text))))
}

func TestStore_ReparseRestartsSequentialIDs(t *testing.T) {
	store := newTestStore(t)
	text := "#education(school: \"X\")\n#education(school: \"Y\")\n"

	store.ReparseFromText(text)
	assert.Equal(t, []string{"education", "education-2"}, blockIDs(store.Section(document.SectionEducation)))

	store.ReparseFromText(text)
	assert.Equal(t, []string{"education", "education-2"}, blockIDs(store.Section(document.SectionEducation)))
}
