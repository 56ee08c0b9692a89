package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keyworddomain "dogwalk-app-go/internal/domain/keyword"
)

func TestLoad(t *testing.T) {
	doc := `
keywords:
  - name: Calm
    category: dog
  - name: Hiking
    category: activity
`
	keywords, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []keyworddomain.Keyword{
		{Name: "Calm", Category: keyworddomain.CategoryDog},
		{Name: "Hiking", Category: keyworddomain.CategoryActivity},
	}, keywords)
}

func TestLoadRejectsBadEntries(t *testing.T) {
	_, err := Load(strings.NewReader("keywords:\n  - name: Calm\n    category: cat\n"))
	assert.ErrorContains(t, err, "unknown category")

	_, err = Load(strings.NewReader("keywords:\n  - category: dog\n"))
	assert.ErrorContains(t, err, "name is required")

	_, err = Load(strings.NewReader("keywords:\n  - name: Calm\n    category: dog\n    colour: brown\n"))
	assert.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	keywords, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, keywords)
}

func TestShippedVocabulary(t *testing.T) {
	keywords, err := LoadFile("../../seeds/keywords.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, keywords)
}
