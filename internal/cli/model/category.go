package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category groups products. Flat structure, no parent/child relation.
type Category struct {
	ID   string    `json:"id"`
	Name Localized `json:"name"`
}

// CategoryDraft stages a category. Categories carry no image, so the
// payload is plain JSON rather than multipart.
type CategoryDraft struct {
	Name Localized
}

func (d *CategoryDraft) Seed(c Category) {
	d.Name = c.Name
}

func (d *CategoryDraft) Reset() {
	d.Name = Localized{}
}

func (d *CategoryDraft) Validate(creating bool) error {
	return validation.Errors{
		"name.uz": validation.Validate(d.Name.Uz, validation.Required),
		"name.ru": validation.Validate(d.Name.Ru, validation.Required),
	}.Filter()
}

func (d *CategoryDraft) Payload(creating bool) (string, []byte, error) {
	return jsonPayload(map[string]any{"name": d.Name})
}
