package store

import (
	"context"
	"errors"
	"strconv"

	"AtlasAdmin/internal/cli/api"
	"AtlasAdmin/internal/cli/model"
)

var (
	// ErrNotCreatable guards resources the back office never creates
	// (orders come in from the storefront).
	ErrNotCreatable = errors.New("resource cannot be created from the back office")
	// ErrNotDeletable guards resources the back office never deletes.
	ErrNotDeletable = errors.New("resource cannot be deleted from the back office")
)

// Resource is the one CRUD lifecycle every manageable entity shares,
// parameterized by the entity shape and its draft. It owns the current page
// of records, the selected record, the draft, and the pagination metadata;
// no two resources share mutable state.
//
// Every operation returns an error and mirrors its message into Err, so
// callers have a single failure style to handle regardless of whether the
// check happened client-side or on the server.
type Resource[T any, D model.Draft[T]] struct {
	client *api.Client
	path   string

	creatable bool
	deletable bool

	Records    []T
	Selected   *T
	Draft      D
	Meta       model.Meta
	Page       int
	TotalPages int
	Loading    bool
	Err        string
}

// Option настраивает ресурс.
type Option func(*options)

type options struct {
	creatable bool
	deletable bool
}

// ReadAndPatchOnly marks a resource that is only listed and updated.
func ReadAndPatchOnly() Option {
	return func(o *options) { o.creatable, o.deletable = false, false }
}

// New builds a resource store for the given API collection path
// (e.g. "/api/news"). The zero draft must be usable immediately.
func New[T any, D model.Draft[T]](client *api.Client, path string, draft D, opts ...Option) *Resource[T, D] {
	o := options{creatable: true, deletable: true}
	for _, opt := range opts {
		opt(&o)
	}
	draft.Reset()
	return &Resource[T, D]{
		client:     client,
		path:       path,
		creatable:  o.creatable,
		deletable:  o.deletable,
		Draft:      draft,
		Page:       1,
		TotalPages: 1,
	}
}

// FetchPage loads one page of records. The server's metadata is
// authoritative: the stored page and page count come from the response, not
// from the requested number. On failure the previous records stay in place
// so the view shows stale-but-consistent data instead of blanking.
func (r *Resource[T, D]) FetchPage(ctx context.Context, page int) error {
	r.Loading = true
	defer func() { r.Loading = false }()
	return r.fetchPage(ctx, page)
}

// fetchPage is FetchPage without the loading toggle, so mutation chains can
// hold Loading for their whole request-plus-refetch window.
func (r *Resource[T, D]) fetchPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	var env model.ListEnvelope[T]
	if err := r.client.GetJSON(ctx, r.path+"?page="+strconv.Itoa(page), &env); err != nil {
		r.Err = err.Error()
		return err
	}
	r.Records = env.Data
	r.Meta = env.Meta
	r.Page = env.Meta.Page
	r.TotalPages = env.Meta.TotalPages
	r.Err = ""
	return nil
}

// GetByID fetches a single record, selects it and seeds the draft from it,
// so an edit form opens pre-populated. Records are left untouched.
func (r *Resource[T, D]) GetByID(ctx context.Context, id string) (T, error) {
	var env model.ItemEnvelope[T]
	if err := r.client.GetJSON(ctx, r.path+"/"+id, &env); err != nil {
		r.Err = err.Error()
		var zero T
		return zero, err
	}
	rec := env.Data
	r.Selected = &rec
	r.Draft.Seed(rec)
	r.Err = ""
	return rec, nil
}

// EnterCreateMode clears the selection and the draft, regardless of prior
// state.
func (r *Resource[T, D]) EnterCreateMode() {
	r.Selected = nil
	r.Draft.Reset()
}

// Create validates the draft, submits it, refetches page 1 (a new record
// always surfaces there) and clears the draft. Validation failures reject
// before any network call is made.
func (r *Resource[T, D]) Create(ctx context.Context) error {
	if !r.creatable {
		return r.fail(ErrNotCreatable)
	}
	if err := r.Draft.Validate(true); err != nil {
		return r.fail(err)
	}
	r.Loading = true
	defer func() { r.Loading = false }()

	ct, body, err := r.Draft.Payload(true)
	if err != nil {
		return r.fail(err)
	}
	if err := r.client.Post(ctx, r.path, ct, body); err != nil {
		return r.fail(err)
	}
	if err := r.fetchPage(ctx, 1); err != nil {
		return err
	}
	r.clearAfterMutation()
	return nil
}

// Update submits the draft against an existing id and refetches the current
// page. A draft without a staged file means "keep the existing image".
func (r *Resource[T, D]) Update(ctx context.Context, id string) error {
	if err := r.Draft.Validate(false); err != nil {
		return r.fail(err)
	}
	r.Loading = true
	defer func() { r.Loading = false }()

	ct, body, err := r.Draft.Payload(false)
	if err != nil {
		return r.fail(err)
	}
	if err := r.client.Patch(ctx, r.path+"/"+id, ct, body); err != nil {
		return r.fail(err)
	}
	if err := r.fetchPage(ctx, r.Page); err != nil {
		return err
	}
	r.clearAfterMutation()
	return nil
}

// DeleteByID deletes a record, then refetches the current page so the list
// and the page count stay consistent with the server's recomputation
// (deleting the last record of the last page shrinks TotalPages).
func (r *Resource[T, D]) DeleteByID(ctx context.Context, id string) error {
	if !r.deletable {
		return r.fail(ErrNotDeletable)
	}
	r.Loading = true
	defer func() { r.Loading = false }()

	if err := r.client.Delete(ctx, r.path+"/"+id); err != nil {
		return r.fail(err)
	}
	page := r.Page
	if page > r.TotalPages && r.TotalPages > 0 {
		page = r.TotalPages
	}
	if err := r.fetchPage(ctx, page); err != nil {
		return err
	}
	r.Selected = nil
	return nil
}

// ClearDraft resets all staged fields and releases any staged preview.
func (r *Resource[T, D]) ClearDraft() {
	r.Draft.Reset()
}

func (r *Resource[T, D]) clearAfterMutation() {
	r.Draft.Reset()
	r.Selected = nil
}

func (r *Resource[T, D]) fail(err error) error {
	r.Err = err.Error()
	return err
}
