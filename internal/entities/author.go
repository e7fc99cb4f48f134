package entities

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"

	"github.com/mrlokans/literalura/internal/apperr"
)

// Conventional bounds for birth and death years.
const (
	MinYear = -3000
	MaxYear = 2100
)

// Author is a catalogued writer. Two authors are the same entity when their
// names match case-insensitively; the surrogate ID is assigned by the store.
//
// Books are not held on the author: the store owns that relation and
// answers it through queries.
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	BirthYear *int      `gorm:"index:idx_author_years" json:"birth_year,omitempty"`
	DeathYear *int      `gorm:"index:idx_author_years" json:"death_year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

// NewAuthor builds a validated author. Either year may be nil.
func NewAuthor(name string, birthYear, deathYear *int) (*Author, error) {
	a := &Author{
		Name:      strings.TrimSpace(name),
		BirthYear: copyYear(birthYear),
		DeathYear: copyYear(deathYear),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the name and year bounds and that birth does not come
// after death.
func (a *Author) Validate() error {
	err := validation.ValidateStruct(a,
		validation.Field(&a.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&a.BirthYear, validation.Min(MinYear), validation.Max(MaxYear)),
		validation.Field(&a.DeathYear, validation.Min(MinYear), validation.Max(MaxYear)),
	)
	if err != nil {
		return apperr.NewValidation("author", err.Error())
	}

	if a.BirthYear != nil && a.DeathYear != nil && *a.BirthYear > *a.DeathYear {
		return apperr.NewValidation("author", "birth year cannot be after death year")
	}
	return nil
}

// SetBirthYear changes the birth year, leaving the author untouched when the
// result would be invalid.
func (a *Author) SetBirthYear(year *int) error {
	previous := a.BirthYear
	a.BirthYear = copyYear(year)
	if err := a.Validate(); err != nil {
		a.BirthYear = previous
		return err
	}
	return nil
}

// SetDeathYear changes the death year, leaving the author untouched when the
// result would be invalid.
func (a *Author) SetDeathYear(year *int) error {
	previous := a.DeathYear
	a.DeathYear = copyYear(year)
	if err := a.Validate(); err != nil {
		a.DeathYear = previous
		return err
	}
	return nil
}

// AliveIn reports whether the author was alive in year. Missing data never
// disqualifies: no birth year means already born, no death year means
// still alive.
func (a *Author) AliveIn(year int) bool {
	bornBy := a.BirthYear == nil || *a.BirthYear <= year
	notDeadYet := a.DeathYear == nil || *a.DeathYear >= year
	return bornBy && notDeadYet
}

// AgeIn returns the author's age in year. The second value is false when the
// age is unknown: no birth year, or year falls after the author's death.
func (a *Author) AgeIn(year int) (int, bool) {
	if a.BirthYear == nil {
		return 0, false
	}
	if a.DeathYear != nil && year > *a.DeathYear {
		return 0, false
	}
	return max(0, year-*a.BirthYear), true
}

// IsLiving reports whether no death year is recorded.
func (a *Author) IsLiving() bool {
	return a.DeathYear == nil
}

// SameAs reports whether other names the same author.
func (a *Author) SameAs(other *Author) bool {
	if other == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(other.Name))
}

// BeforeSave rejects invalid rows regardless of how the struct was mutated.
func (a *Author) BeforeSave(tx *gorm.DB) error {
	return a.Validate()
}

func copyYear(year *int) *int {
	if year == nil {
		return nil
	}
	y := *year
	return &y
}
