package entities

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gorm.io/gorm"

	"github.com/mrlokans/literalura/internal/apperr"
)

// Book is a catalogued title. ID is the Gutendex identifier reused verbatim,
// so re-ingesting the same title is caught by an existence check.
type Book struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title         string    `gorm:"size:500;not null;index" json:"title"`
	Language      string    `gorm:"size:10;index" json:"language"`
	DownloadCount *int      `json:"download_count,omitempty"`
	AuthorID      uint      `gorm:"not null;index" json:"author_id"`
	Author        Author    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) Validate() error {
	err := validation.ValidateStruct(b,
		validation.Field(&b.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&b.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&b.Language, validation.Length(0, 10)),
		validation.Field(&b.DownloadCount, validation.Min(0)),
		validation.Field(&b.AuthorID, validation.Required),
	)
	if err != nil {
		return apperr.NewValidation("book", err.Error())
	}
	return nil
}

func (b *Book) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}

// Downloads returns the download count, treating an unknown count as zero.
func (b *Book) Downloads() int {
	if b.DownloadCount == nil {
		return 0
	}
	return *b.DownloadCount
}

// LanguageName returns the English name of the book's language code,
// e.g. "pt" becomes "Portuguese".
func (b *Book) LanguageName() string {
	code := strings.TrimSpace(b.Language)
	if code == "" {
		return "Unknown"
	}

	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return strings.ToUpper(code)
	}
	return name
}
