package model

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Draft is the client-only staged copy of a record's editable fields.
// One implementation exists per resource; all of them keep the localized
// fields fully shaped (both uz and ru present) at all times.
type Draft[T any] interface {
	// Seed pre-populates the draft from an existing record for editing.
	Seed(T)
	// Reset clears every staged field and releases any staged file preview.
	Reset()
	// Validate runs the client-side pre-checks. creating distinguishes the
	// rules that only apply on create (e.g. a mandatory image).
	Validate(creating bool) error
	// Payload packages the draft for the wire. creating has the same meaning
	// as in Validate; on update an absent file field means "keep the current
	// image" server-side.
	Payload(creating bool) (contentType string, body []byte, err error)
}

// jsonPayload marshals v as an application/json body.
func jsonPayload(v any) (string, []byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	return "application/json", b, nil
}

// multipartPayload builds a multipart/form-data body via the supplied callback.
func multipartPayload(build func(w *multipart.Writer) error) (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := build(w); err != nil {
		return "", nil, err
	}
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

// writeJSONField пишет локализованные и прочие структурные поля одной
// form-строкой с JSON внутри — так их ожидает сервер.
func writeJSONField(w *multipart.Writer, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.WriteField(name, string(b))
}

// writeFilePart adds a staged file under the given field name, preserving
// its sniffed content type.
func writeFilePart(w *multipart.Writer, field string, f *StagedFile) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		`form-data; name="`+escapeQuotes(field)+`"; filename="`+escapeQuotes(f.Name)+`"`)
	h.Set("Content-Type", f.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Bytes())
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
