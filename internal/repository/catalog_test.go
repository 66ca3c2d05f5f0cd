package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocaprep/interview-engine/internal/entity"
)

func testDomains() []entity.Domain {
	return []entity.Domain{
		{ID: "software", Name: "Software Engineering"},
		{ID: "data_science", Name: "Data Science"},
		{ID: "electronics", Name: "Electronics"},
	}
}

func TestCatalogGet(t *testing.T) {
	catalog := NewCatalog(testDomains())

	d, err := catalog.Get("data_science")
	require.NoError(t, err)
	assert.Equal(t, "Data Science", d.Name)
}

func TestCatalogGetUnknown(t *testing.T) {
	catalog := NewCatalog(testDomains())

	_, err := catalog.Get("astrology")
	assert.ErrorIs(t, err, entity.ErrUnknownDomain)
}

func TestCatalogListIsSortedByID(t *testing.T) {
	catalog := NewCatalog(testDomains())

	list := catalog.List()
	require.Len(t, list, 3)
	assert.Equal(t, "data_science", list[0].ID)
	assert.Equal(t, "electronics", list[1].ID)
	assert.Equal(t, "software", list[2].ID)
}
