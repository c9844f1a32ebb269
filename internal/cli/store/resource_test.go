package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AtlasAdmin/internal/cli/api"
	"AtlasAdmin/internal/cli/model"
	"AtlasAdmin/internal/cli/repo/fs"
)

// newStubClient поднимает httptest-сервер со счётчиком запросов и клиента
// поверх него.
func newStubClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	dir := t.TempDir()
	store := fs.New(filepath.Join(dir, "t"), filepath.Join(dir, "s"))
	return api.New(srv.URL, store, store.States()), &hits
}

func TestResource_FetchPage_ServerMetaIsAuthoritative(t *testing.T) {
	var requestedPage string
	client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPage = r.URL.Query().Get("page")
		// сервер подрезал запрошенную страницу до последней существующей
		w.Write([]byte(`{"data":[{"id":"c1","name":{"uz":"a","ru":"b"}}],
			"meta":{"total":11,"page":2,"limit":10,"totalPages":2}}`))
	})
	r := NewCategories(client)

	require.NoError(t, r.FetchPage(context.Background(), 99))
	assert.Equal(t, "99", requestedPage)
	assert.Equal(t, 2, r.Page, "stored page comes from the response, not the request")
	assert.Equal(t, 2, r.TotalPages)
	assert.Equal(t, 11, r.Meta.Total)
	require.Len(t, r.Records, 1)
	assert.Equal(t, "c1", r.Records[0].ID)
	assert.False(t, r.Loading)
}

func TestResource_FetchPage_NegativePageRequestsOne(t *testing.T) {
	var requestedPage string
	client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestedPage = r.URL.Query().Get("page")
		w.Write([]byte(`{"data":[],"meta":{"total":0,"page":1,"limit":10,"totalPages":1}}`))
	})
	r := NewCategories(client)
	require.NoError(t, r.FetchPage(context.Background(), -3))
	assert.Equal(t, "1", requestedPage)
}

func TestResource_FetchPage_FailureKeepsRecords(t *testing.T) {
	fail := false
	client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
			return
		}
		w.Write([]byte(`{"data":[{"id":"c1","name":{"uz":"a","ru":"b"}}],
			"meta":{"total":1,"page":1,"limit":10,"totalPages":1}}`))
	})
	r := NewCategories(client)
	require.NoError(t, r.FetchPage(context.Background(), 1))
	require.Len(t, r.Records, 1)

	fail = true
	require.Error(t, r.FetchPage(context.Background(), 2))
	assert.Len(t, r.Records, 1, "stale records beat a blank table")
	assert.Equal(t, "boom", r.Err)
}

func TestResource_GetByID_SeedsSelectionAndDraft(t *testing.T) {
	client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/categories/c1", r.URL.Path)
		w.Write([]byte(`{"data":{"id":"c1","name":{"uz":"Muzlatgich","ru":"Холодильники"}}}`))
	})
	r := NewCategories(client)

	rec, err := r.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", rec.ID)
	require.NotNil(t, r.Selected)
	assert.Equal(t, "Muzlatgich", r.Draft.Name.Uz)
}

func TestResource_EnterCreateMode_ClearsSelectionAndDraft(t *testing.T) {
	client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"c1","name":{"uz":"a","ru":"b"}}}`))
	})
	r := NewCategories(client)
	_, err := r.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, r.Selected)

	r.EnterCreateMode()
	assert.Nil(t, r.Selected)
	assert.Equal(t, model.Localized{}, r.Draft.Name)
}

func TestResource_Create_ValidationRejectsBeforeNetwork(t *testing.T) {
	client, hits := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {})
	r := NewCategories(client)

	err := r.Create(context.Background()) // пустой черновик
	require.Error(t, err)
	assert.NotEmpty(t, r.Err)
	assert.Zero(t, hits.Load(), "validation failures must not reach the wire")
}

func TestResource_CreateBanner_MissingImageRejectsBeforeNetwork(t *testing.T) {
	client, hits := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {})
	r := NewBanners(client)
	r.Draft.Title = model.Localized{Uz: "u", Ru: "r"}
	r.Draft.Text = model.Localized{Uz: "u", Ru: "r"}

	err := r.Create(context.Background())
	require.ErrorIs(t, err, model.ErrImageRequired)
	assert.Equal(t, model.ErrImageRequired.Error(), r.Err)
	assert.Zero(t, hits.Load())
}

func TestResource_Create_SubmitsThenRefetchesPageOne(t *testing.T) {
	var posts, gets []string
	client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			posts = append(posts, r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data":{"id":"c9","name":{"uz":"a","ru":"b"}}}`))
		default:
			gets = append(gets, r.URL.RawQuery)
			w.Write([]byte(`{"data":[{"id":"c9","name":{"uz":"a","ru":"b"}}],
				"meta":{"total":1,"page":1,"limit":10,"totalPages":1}}`))
		}
	})
	r := NewCategories(client)
	r.Page = 3 // новая запись всплывает на первой странице независимо от текущей
	r.Draft.Name = model.Localized{Uz: "a", Ru: "b"}

	require.NoError(t, r.Create(context.Background()))
	assert.Equal(t, []string{"/api/categories"}, posts)
	assert.Equal(t, []string{"page=1"}, gets)
	assert.Equal(t, model.Localized{}, r.Draft.Name, "draft cleared after create")
	assert.Nil(t, r.Selected)
}

func TestResource_Update_RefetchesCurrentPage(t *testing.T) {
	var patched string
	var query string
	client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			patched = r.URL.Path
			w.Write([]byte(`{"data":{"id":"c1","name":{"uz":"x","ru":"y"}}}`))
			return
		}
		query = r.URL.RawQuery
		w.Write([]byte(`{"data":[],"meta":{"total":0,"page":2,"limit":10,"totalPages":2}}`))
	})
	r := NewCategories(client)
	r.Page = 2
	r.Draft.Name = model.Localized{Uz: "x", Ru: "y"}

	require.NoError(t, r.Update(context.Background(), "c1"))
	assert.Equal(t, "/api/categories/c1", patched)
	assert.Equal(t, "page=2", query)
}

func TestResource_Orders_CreateAndDeleteAreGuarded(t *testing.T) {
	client, hits := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {})
	r := NewOrders(client)
	r.Draft.Status = model.OrderCalled

	assert.ErrorIs(t, r.Create(context.Background()), ErrNotCreatable)
	assert.ErrorIs(t, r.DeleteByID(context.Background(), "o1"), ErrNotDeletable)
	assert.Zero(t, hits.Load())
}

func TestResource_MutationFailureKeepsDraft(t *testing.T) {
	client, _ := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"name already taken"}`))
	})
	r := NewCategories(client)
	r.Draft.Name = model.Localized{Uz: "a", Ru: "b"}

	require.Error(t, r.Create(context.Background()))
	assert.Equal(t, "name already taken", r.Err)
	assert.Equal(t, "a", r.Draft.Name.Uz, "draft survives a rejected submit for correction")
}
