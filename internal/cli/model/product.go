package model

import (
	"fmt"
	"mime/multipart"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// MaxProductDetails caps the per-language key/value spec entries.
	MaxProductDetails = 6
	// MaxProductImages caps the gallery size.
	MaxProductImages = 10
)

// ProdImage is one gallery entry of a product.
type ProdImage struct {
	Path string `json:"path"`
}

// ProductDetails holds the per-language specification maps (e.g. weight,
// power, warranty), capped at MaxProductDetails entries per language.
type ProductDetails struct {
	Uz map[string]string `json:"uz"`
	Ru map[string]string `json:"ru"`
}

// Product is a catalog item.
type Product struct {
	ID         int64          `json:"id"`
	Name       Localized      `json:"name"`
	Price      float64        `json:"price"`
	Model      string         `json:"model"`
	Details    ProductDetails `json:"details"`
	CategoryID string         `json:"categoryId"`
	Category   *Category      `json:"category,omitempty"`
	Images     []ProdImage    `json:"images"`
	CreatedAt  string         `json:"createdAt,omitempty"`
}

// ProductDraft stages a product with its gallery.
type ProductDraft struct {
	Name       Localized
	Price      float64
	Model      string
	CategoryID string
	Details    ProductDetails
	Images     []*StagedFile
}

func (d *ProductDraft) Seed(p Product) {
	d.Reset()
	d.Name = p.Name
	d.Price = p.Price
	d.Model = p.Model
	d.CategoryID = p.CategoryID
	d.Details = ProductDetails{
		Uz: copyDetails(p.Details.Uz),
		Ru: copyDetails(p.Details.Ru),
	}
}

func (d *ProductDraft) Reset() {
	for _, f := range d.Images {
		f.Release()
	}
	*d = ProductDraft{
		Details: ProductDetails{Uz: map[string]string{}, Ru: map[string]string{}},
	}
}

// StageImage appends a gallery image. Fails once the gallery is full.
func (d *ProductDraft) StageImage(f *StagedFile) error {
	if len(d.Images) >= MaxProductImages {
		f.Release()
		return fmt.Errorf("a product can have at most %d images", MaxProductImages)
	}
	d.Images = append(d.Images, f)
	return nil
}

// SetDetail stores one spec entry for a language, enforcing the cap.
func (d *ProductDraft) SetDetail(lang, key, value string) error {
	m := d.Details.Uz
	if lang == "ru" {
		m = d.Details.Ru
	}
	if m == nil {
		m = map[string]string{}
		if lang == "ru" {
			d.Details.Ru = m
		} else {
			d.Details.Uz = m
		}
	}
	if _, exists := m[key]; !exists && len(m) >= MaxProductDetails {
		return fmt.Errorf("at most %d detail entries per language", MaxProductDetails)
	}
	m[key] = value
	return nil
}

func (d *ProductDraft) Validate(creating bool) error {
	return validation.Errors{
		"name.uz":    validation.Validate(d.Name.Uz, validation.Required),
		"name.ru":    validation.Validate(d.Name.Ru, validation.Required),
		"price":      validation.Validate(d.Price, validation.Min(0.0)),
		"categoryId": validation.Validate(d.CategoryID, validation.Required),
		"details.uz": validation.Validate(len(d.Details.Uz), validation.Max(MaxProductDetails)),
		"details.ru": validation.Validate(len(d.Details.Ru), validation.Max(MaxProductDetails)),
		"images":     validation.Validate(len(d.Images), validation.Max(MaxProductImages)),
	}.Filter()
}

func (d *ProductDraft) Payload(creating bool) (string, []byte, error) {
	return multipartPayload(func(w *multipart.Writer) error {
		for _, f := range d.Images {
			if err := writeFilePart(w, "images", f); err != nil {
				return err
			}
		}
		if err := writeJSONField(w, "name", d.Name); err != nil {
			return err
		}
		if err := w.WriteField("price", strconv.FormatFloat(d.Price, 'f', -1, 64)); err != nil {
			return err
		}
		if err := w.WriteField("model", d.Model); err != nil {
			return err
		}
		if err := w.WriteField("categoryId", d.CategoryID); err != nil {
			return err
		}
		return writeJSONField(w, "details", d.Details)
	})
}

func copyDetails(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
