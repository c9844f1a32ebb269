package model

import (
	"mime/multipart"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NewsItem is one article of the platform's news feed.
type NewsItem struct {
	ID            int64      `json:"id"`
	ImageURL      string     `json:"image_url"`
	Title         *Localized `json:"title"`
	Text          Localized  `json:"text"`
	CreatedAt     string     `json:"createdAt,omitempty"`
	LastUpdatedAt string     `json:"lastUpdatedAt,omitempty"`
}

// NewsDraft stages a news article for create or edit.
// The image is optional: articles may ship text-only.
type NewsDraft struct {
	Title Localized
	Text  Localized
	Image *StagedFile
}

func (d *NewsDraft) Seed(n NewsItem) {
	d.Reset()
	if n.Title != nil {
		d.Title = *n.Title
	}
	d.Text = n.Text
}

func (d *NewsDraft) Reset() {
	d.Title = Localized{}
	d.Text = Localized{}
	d.Image = replaceStaged(d.Image, nil)
}

// StageImage replaces the staged image, releasing the previous preview.
func (d *NewsDraft) StageImage(f *StagedFile) {
	d.Image = replaceStaged(d.Image, f)
}

func (d *NewsDraft) Validate(creating bool) error {
	return validation.Errors{
		"title.uz": validation.Validate(d.Title.Uz, validation.Required),
		"title.ru": validation.Validate(d.Title.Ru, validation.Required),
		"text.uz":  validation.Validate(d.Text.Uz, validation.Required),
		"text.ru":  validation.Validate(d.Text.Ru, validation.Required),
	}.Filter()
}

func (d *NewsDraft) Payload(creating bool) (string, []byte, error) {
	return multipartPayload(func(w *multipart.Writer) error {
		if d.Image != nil {
			if err := writeFilePart(w, "image", d.Image); err != nil {
				return err
			}
		}
		if err := writeJSONField(w, "title", d.Title); err != nil {
			return err
		}
		return writeJSONField(w, "text", d.Text)
	})
}
