package model

import "mime/multipart"

// Partner is a partner company represented by a single logo.
type Partner struct {
	ID   string `json:"id"`
	Logo string `json:"logo"`
}

// PartnerDraft stages a partner logo. The logo is the whole record, so it
// is mandatory on create and on update alike.
type PartnerDraft struct {
	Logo *StagedFile
}

func (d *PartnerDraft) Seed(p Partner) {
	// nothing textual to seed; the stored logo stays on the server
	d.Reset()
}

func (d *PartnerDraft) Reset() {
	d.Logo = replaceStaged(d.Logo, nil)
}

func (d *PartnerDraft) StageLogo(f *StagedFile) {
	d.Logo = replaceStaged(d.Logo, f)
}

func (d *PartnerDraft) Validate(creating bool) error {
	if d.Logo == nil {
		return ErrImageRequired
	}
	return nil
}

func (d *PartnerDraft) Payload(creating bool) (string, []byte, error) {
	return multipartPayload(func(w *multipart.Writer) error {
		return writeFilePart(w, "logo", d.Logo)
	})
}
