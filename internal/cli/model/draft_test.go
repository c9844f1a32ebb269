package model

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsDraft_ResetKeepsLocalizedShape(t *testing.T) {
	d := &NewsDraft{
		Title: Localized{Uz: "Sarlavha", Ru: "Заголовок"},
		Text:  Localized{Uz: "Matn", Ru: "Текст"},
	}
	d.Reset()

	// both language keys survive as empty strings, never missing
	b, err := json.Marshal(d.Title)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uz":"","ru":""}`, string(b))
	assert.Equal(t, Localized{}, d.Text)
}

func TestNewsDraft_ValidateRequiresBothLanguages(t *testing.T) {
	d := &NewsDraft{
		Title: Localized{Uz: "Sarlavha"}, // ru missing
		Text:  Localized{Uz: "Matn", Ru: "Текст"},
	}
	err := d.Validate(true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title.ru")

	d.Title.Ru = "Заголовок"
	assert.NoError(t, d.Validate(true))
}

func TestNewsDraft_SeedFromNilTitle(t *testing.T) {
	d := &NewsDraft{}
	d.Seed(NewsItem{Text: Localized{Uz: "a", Ru: "b"}})
	assert.Equal(t, Localized{}, d.Title)
	assert.Equal(t, Localized{Uz: "a", Ru: "b"}, d.Text)
}

func TestBannerDraft_CreateRequiresImage(t *testing.T) {
	d := &BannerDraft{
		Title: Localized{Uz: "Chegirma", Ru: "Скидка"},
		Text:  Localized{Uz: "50%", Ru: "50%"},
	}
	assert.ErrorIs(t, d.Validate(true), ErrImageRequired)
	// updates may keep the stored image
	assert.NoError(t, d.Validate(false))
}

func TestPartnerDraft_RequiresLogo(t *testing.T) {
	d := &PartnerDraft{}
	assert.ErrorIs(t, d.Validate(true), ErrImageRequired)
	assert.ErrorIs(t, d.Validate(false), ErrImageRequired)
}

func TestNewsDraft_PayloadEncodesLocalizedFieldsAsJSON(t *testing.T) {
	staged, err := StageFile(writeTempImage(t, "a.png", pngHeader))
	require.NoError(t, err)
	d := &NewsDraft{
		Title: Localized{Uz: "Sarlavha", Ru: "Заголовок"},
		Text:  Localized{Uz: "Matn", Ru: "Текст"},
	}
	d.StageImage(staged)
	defer d.Reset()

	ct, body, err := d.Payload(true)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(ct)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	fields := map[string]string{}
	var gotImage bool
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, _ := io.ReadAll(part)
		if part.FormName() == "image" {
			gotImage = true
			assert.Equal(t, "a.png", part.FileName())
			continue
		}
		fields[part.FormName()] = string(data)
	}
	assert.True(t, gotImage)
	assert.JSONEq(t, `{"uz":"Sarlavha","ru":"Заголовок"}`, fields["title"])
	assert.JSONEq(t, `{"uz":"Matn","ru":"Текст"}`, fields["text"])
}

func TestNewsDraft_PayloadOmitsImageFieldWhenNotStaged(t *testing.T) {
	d := &NewsDraft{
		Title: Localized{Uz: "u", Ru: "r"},
		Text:  Localized{Uz: "u", Ru: "r"},
	}
	ct, body, err := d.Payload(false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data"))
	assert.NotContains(t, string(body), `name="image"`)
}

func TestProductDraft_DetailCap(t *testing.T) {
	d := &ProductDraft{}
	d.Reset()
	for i := 0; i < MaxProductDetails; i++ {
		require.NoError(t, d.SetDetail("uz", string(rune('a'+i)), "v"))
	}
	err := d.SetDetail("uz", "one-too-many", "v")
	require.Error(t, err)
	// overwriting an existing key is still allowed at the cap
	assert.NoError(t, d.SetDetail("uz", "a", "v2"))
	// the other language has its own budget
	assert.NoError(t, d.SetDetail("ru", "a", "v"))
}

func TestProductDraft_ImageCap(t *testing.T) {
	d := &ProductDraft{}
	d.Reset()
	for i := 0; i < MaxProductImages; i++ {
		f, err := StageFile(writeTempImage(t, "img.png", pngHeader))
		require.NoError(t, err)
		require.NoError(t, d.StageImage(f))
	}
	extra, err := StageFile(writeTempImage(t, "extra.png", pngHeader))
	require.NoError(t, err)
	require.Error(t, d.StageImage(extra))
	assert.True(t, extra.Released(), "rejected image must not leak its preview")
	d.Reset()
}

func TestOrderDraft_ValidateStatus(t *testing.T) {
	d := &OrderDraft{Status: OrderCalled}
	assert.NoError(t, d.Validate(false))

	d.Status = "SHIPPED"
	assert.Error(t, d.Validate(false))
}

func TestCategoryDraft_JSONPayload(t *testing.T) {
	d := &CategoryDraft{Name: Localized{Uz: "Muzlatgich", Ru: "Холодильники"}}
	ct, body, err := d.Payload(true)
	require.NoError(t, err)
	assert.Equal(t, "application/json", ct)
	assert.JSONEq(t, `{"name":{"uz":"Muzlatgich","ru":"Холодильники"}}`, string(body))
}
