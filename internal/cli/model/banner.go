package model

import (
	"errors"
	"mime/multipart"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrImageRequired signals a create attempt without a staged image for a
// resource whose image is mandatory.
var ErrImageRequired = errors.New("please select an image")

// BannerItem is a promotional banner shown on the storefront.
type BannerItem struct {
	ID            int64      `json:"id"`
	ImageURL      string     `json:"image_url"`
	Title         *Localized `json:"title"`
	Text          Localized  `json:"text"`
	CreatedAt     string     `json:"createdAt,omitempty"`
	LastUpdatedAt string     `json:"lastUpdatedAt,omitempty"`
}

// BannerDraft stages a banner. Unlike news, a banner cannot be created
// without an image; on update an omitted image keeps the current one.
type BannerDraft struct {
	Title Localized
	Text  Localized
	Image *StagedFile
}

func (d *BannerDraft) Seed(b BannerItem) {
	d.Reset()
	if b.Title != nil {
		d.Title = *b.Title
	}
	d.Text = b.Text
}

func (d *BannerDraft) Reset() {
	d.Title = Localized{}
	d.Text = Localized{}
	d.Image = replaceStaged(d.Image, nil)
}

func (d *BannerDraft) StageImage(f *StagedFile) {
	d.Image = replaceStaged(d.Image, f)
}

func (d *BannerDraft) Validate(creating bool) error {
	if creating && d.Image == nil {
		return ErrImageRequired
	}
	return validation.Errors{
		"title.uz": validation.Validate(d.Title.Uz, validation.Required),
		"title.ru": validation.Validate(d.Title.Ru, validation.Required),
		"text.uz":  validation.Validate(d.Text.Uz, validation.Required),
		"text.ru":  validation.Validate(d.Text.Ru, validation.Required),
	}.Filter()
}

func (d *BannerDraft) Payload(creating bool) (string, []byte, error) {
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
