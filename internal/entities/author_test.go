package entities

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/literalura/internal/apperr"
)

func year(y int) *int { return &y }

func TestNewAuthor(t *testing.T) {
	tests := []struct {
		name    string
		author  string
		birth   *int
		death   *int
		wantErr bool
	}{
		{"both years", "Machado de Assis", year(1839), year(1908), false},
		{"no years", "Anonymous", nil, nil, false},
		{"same year", "Short Life", year(1900), year(1900), false},
		{"negative years", "Homer", year(-800), year(-701), false},
		{"trims name", "  Jane Austen  ", year(1775), year(1817), false},
		{"birth after death", "Backwards", year(1900), year(1850), true},
		{"empty name", "   ", nil, nil, true},
		{"one char name", "X", nil, nil, true},
		{"birth below range", "Ancient", year(-3001), nil, true},
		{"death above range", "Future", nil, year(2101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAuthor(tt.author, tt.birth, tt.death)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.author), a.Name)
		})
	}
}

func TestAuthor_SetYearsRejectsInversion(t *testing.T) {
	a, err := NewAuthor("Machado de Assis", year(1839), year(1908))
	require.NoError(t, err)

	err = a.SetDeathYear(year(1800))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 1908, *a.DeathYear, "failed mutation must not stick")

	err = a.SetBirthYear(year(1950))
	require.Error(t, err)
	assert.Equal(t, 1839, *a.BirthYear)

	require.NoError(t, a.SetDeathYear(nil))
	assert.True(t, a.IsLiving())
}

func TestAuthor_AliveIn(t *testing.T) {
	cases := []struct {
		birth, death *int
	}{
		{year(1839), year(1908)},
		{nil, year(1908)},
		{year(1839), nil},
		{nil, nil},
		{year(1900), year(1900)},
	}
	years := []int{-3000, 1800, 1838, 1839, 1900, 1908, 1909, 2100}

	for _, c := range cases {
		a, err := NewAuthor("Someone", c.birth, c.death)
		require.NoError(t, err)
		for _, y := range years {
			want := (c.birth == nil || *c.birth <= y) && (c.death == nil || *c.death >= y)
			assert.Equal(t, want, a.AliveIn(y), fmt.Sprintf("birth=%v death=%v year=%d", c.birth, c.death, y))
		}
	}
}

func TestAuthor_AgeIn(t *testing.T) {
	a, err := NewAuthor("Machado de Assis", year(1839), year(1908))
	require.NoError(t, err)

	age, ok := a.AgeIn(1900)
	assert.True(t, ok)
	assert.Equal(t, 61, age)

	age, ok = a.AgeIn(1800)
	assert.True(t, ok)
	assert.Equal(t, 0, age)

	_, ok = a.AgeIn(1950)
	assert.False(t, ok)

	unknown, err := NewAuthor("Anonymous", nil, nil)
	require.NoError(t, err)
	_, ok = unknown.AgeIn(1900)
	assert.False(t, ok)
}

func TestAuthor_SameAs(t *testing.T) {
	a := &Author{Name: "Machado de Assis"}
	assert.True(t, a.SameAs(&Author{Name: "MACHADO DE ASSIS"}))
	assert.True(t, a.SameAs(&Author{Name: " machado de assis "}))
	assert.False(t, a.SameAs(&Author{Name: "José de Alencar"}))
	assert.False(t, a.SameAs(nil))
}
