package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/geoprobe/internal/common"
	"github.com/aleister1102/geoprobe/internal/models"
)

func TestNew_EmbeddedTable(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	list := c.List()
	assert.Len(t, list, 249)
	assert.Equal(t, 249, c.Len())
	assert.True(t, sort.SliceIsSorted(list, func(i, j int) bool { return list[i].Alpha2 < list[j].Alpha2 }))

	seen := make(map[string]bool, len(list))
	for _, code := range list {
		assert.Len(t, code.Alpha2, 2)
		assert.NotEmpty(t, code.Name)
		assert.False(t, seen[code.Alpha2], "duplicate %s", code.Alpha2)
		seen[code.Alpha2] = true
	}

	assert.Equal(t, models.CountryCode{Alpha2: "AD", Name: "Andorra"}, list[0])
	assert.Equal(t, "ZW", list[len(list)-1].Alpha2)
}

func TestDefault_ReturnsSameInstance(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestList_ReturnsCopy(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	list := c.List()
	list[0].Name = "mutated"
	assert.Equal(t, "Andorra", c.List()[0].Name)
}

func TestLookup(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	tests := []struct {
		input    string
		wantName string
		wantOK   bool
	}{
		{input: "AE", wantName: "United Arab Emirates", wantOK: true},
		{input: "kr", wantName: "Korea, Republic of", wantOK: true},
		{input: " no ", wantName: "Norway", wantOK: true},
		{input: "XX", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code, ok := c.Lookup(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, code.Name)
		})
	}
}

func TestSubset(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	sub, err := c.Subset("ae", "AD", "ae")
	require.NoError(t, err)
	assert.Equal(t, []models.CountryCode{
		{Alpha2: "AD", Name: "Andorra"},
		{Alpha2: "AE", Name: "United Arab Emirates"},
	}, sub.List())

	_, err = c.Subset("AD", "ZZ")
	require.Error(t, err)
	assert.True(t, common.IsInputError(err))

	_, err = c.Subset()
	assert.Error(t, err)
}

func TestNewFromCodes_Validation(t *testing.T) {
	_, err := NewFromCodes([]models.CountryCode{{Alpha2: "A", Name: "Bad"}})
	assert.Error(t, err)

	_, err = NewFromCodes([]models.CountryCode{{Alpha2: "AD", Name: ""}})
	assert.Error(t, err)

	_, err = NewFromCodes([]models.CountryCode{{Alpha2: "ad", Name: "Andorra"}, {Alpha2: "AD", Name: "Andorra"}})
	assert.Error(t, err)

	c, err := NewFromCodes([]models.CountryCode{{Alpha2: "ae", Name: "United Arab Emirates"}, {Alpha2: "ad", Name: "Andorra"}})
	require.NoError(t, err)
	assert.Equal(t, "AD", c.List()[0].Alpha2)
}

func TestParseCodeList(t *testing.T) {
	assert.Equal(t, []string{"ad", "ae", "GB"}, ParseCodeList("ad, ae,,GB "))
	assert.Nil(t, ParseCodeList(""))
}
