package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlocks_InSection(t *testing.T) {
	blocks := Blocks{
		{ID: "a", SectionID: SectionSkills, Order: 2},
		{ID: "b", SectionID: SectionEducation, Order: 0},
		{ID: "c", SectionID: SectionSkills, Order: 0},
		{ID: "d", SectionID: SectionSkills, Order: 2},
	}

	var ids []string
	for _, b := range blocks.InSection(SectionSkills) {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"c", "a", "d"}, ids)
	assert.Empty(t, blocks.InSection(SectionProjects))
}

func TestBlocks_NextOrder(t *testing.T) {
	blocks := Blocks{
		{ID: "a", SectionID: SectionSkills, Order: 0},
		{ID: "b", SectionID: SectionSkills, Order: 1},
	}
	assert.Equal(t, 2, blocks.NextOrder(SectionSkills))
	assert.Equal(t, 0, blocks.NextOrder(SectionEducation))

	// A gap left by deleting order 0 must not produce a duplicate order.
	gapped := Blocks{
		{ID: "b", SectionID: SectionSkills, Order: 1},
		{ID: "c", SectionID: SectionSkills, Order: 2},
	}
	assert.Equal(t, 3, gapped.NextOrder(SectionSkills))
}

func TestBlocks_CloneAndFind(t *testing.T) {
	blocks := Blocks{{ID: "a", Title: "A"}}
	clone := blocks.Clone()
	clone[0].Title = "changed"

	assert.Equal(t, "A", blocks.Find("a").Title)
	assert.Nil(t, blocks.Find("missing"))
	assert.Nil(t, Blocks(nil).Clone())
}
