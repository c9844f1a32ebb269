package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"AtlasAdmin/internal/cli/model"
)

// staffRow is a back-office account allowed to log in.
type staffRow struct {
	ID           string `gorm:"primaryKey"`
	PhoneNumber  string `gorm:"uniqueIndex"`
	PasswordHash string
}

// record stores one entity of any resource as its wire JSON. Seq doubles as
// the numeric id for the resources that expose numeric ids.
type record struct {
	Seq       int64  `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"uniqueIndex"`
	Resource  string `gorm:"index"`
	Payload   []byte
	CreatedAt time.Time
}

// newTestDB opens an in-memory sqlite database through the pure-Go driver.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&staffRow{}, &record{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// buildEntity turns an incoming create/update request into the stored wire
// JSON of the resource. prev is nil on create and the previous payload on
// patch; an absent file field on patch keeps the previous image.
func (s *Server) buildEntity(resource string, row *record, r *http.Request, prev []byte) ([]byte, error) {
	switch resource {
	case "news", "banners":
		return buildArticle(row, r, prev)
	case "categories":
		return buildCategory(row, r, prev)
	case "partners":
		return buildPartner(row, r, prev)
	case "products":
		return s.buildProduct(row, r, prev)
	case "orders":
		return buildOrderPatch(r, prev)
	}
	return nil, fmt.Errorf("unknown resource %q", resource)
}

func buildArticle(row *record, r *http.Request, prev []byte) ([]byte, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, errors.New("expected multipart form")
	}
	var title, text model.Localized
	if err := json.Unmarshal([]byte(r.FormValue("title")), &title); err != nil {
		return nil, badField("title")
	}
	if err := json.Unmarshal([]byte(r.FormValue("text")), &text); err != nil {
		return nil, badField("text")
	}
	item := model.NewsItem{
		ID:            row.Seq,
		Title:         &title,
		Text:          text,
		CreatedAt:     row.CreatedAt.Format(time.RFC3339),
		LastUpdatedAt: time.Now().Format(time.RFC3339),
	}
	if prev != nil {
		var old model.NewsItem
		_ = json.Unmarshal(prev, &old)
		item.ImageURL = old.ImageURL
	}
	if file, header, err := r.FormFile("image"); err == nil {
		file.Close()
		item.ImageURL = storeUpload(header.Filename)
	}
	return json.Marshal(item)
}

func buildCategory(row *record, r *http.Request, prev []byte) ([]byte, error) {
	var req struct {
		Name model.Localized `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, badField("name")
	}
	return json.Marshal(model.Category{ID: row.ID, Name: req.Name})
}

func buildPartner(row *record, r *http.Request, prev []byte) ([]byte, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, errors.New("expected multipart form")
	}
	partner := model.Partner{ID: row.ID}
	if prev != nil {
		_ = json.Unmarshal(prev, &partner)
		partner.ID = row.ID
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		if prev == nil {
			return nil, errors.New("logo file is required")
		}
		return json.Marshal(partner)
	}
	file.Close()
	partner.Logo = storeUpload(header.Filename)
	return json.Marshal(partner)
}

func (s *Server) buildProduct(row *record, r *http.Request, prev []byte) ([]byte, error) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		return nil, errors.New("expected multipart form")
	}
	var name model.Localized
	if err := json.Unmarshal([]byte(r.FormValue("name")), &name); err != nil {
		return nil, badField("name")
	}
	var details model.ProductDetails
	if v := r.FormValue("details"); v != "" {
		if err := json.Unmarshal([]byte(v), &details); err != nil {
			return nil, badField("details")
		}
	}
	var price float64
	if v := r.FormValue("price"); v != "" {
		if _, err := fmt.Sscanf(v, "%f", &price); err != nil {
			return nil, badField("price")
		}
	}
	product := model.Product{
		ID:         row.Seq,
		Name:       name,
		Price:      price,
		Model:      r.FormValue("model"),
		Details:    details,
		CategoryID: r.FormValue("categoryId"),
		CreatedAt:  row.CreatedAt.Format(time.RFC3339),
	}
	if prev != nil {
		var old model.Product
		_ = json.Unmarshal(prev, &old)
		product.Images = old.Images
	}
	if form := r.MultipartForm; form != nil && len(form.File["images"]) > 0 {
		product.Images = nil
		for _, header := range form.File["images"] {
			product.Images = append(product.Images, model.ProdImage{Path: storeUpload(header.Filename)})
		}
	}
	// denormalize the category the way the real backend does
	if cat, ok := s.find("categories", product.CategoryID); ok {
		var category model.Category
		if json.Unmarshal(cat.Payload, &category) == nil {
			product.Category = &category
		}
	}
	return json.Marshal(product)
}

func buildOrderPatch(r *http.Request, prev []byte) ([]byte, error) {
	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, badField("status")
	}
	var order model.Order
	if err := json.Unmarshal(prev, &order); err != nil {
		return nil, errors.New("corrupt order record")
	}
	switch req.Status {
	case model.OrderNotCalled, model.OrderCalled, model.OrderAccepted:
		order.Status = req.Status
	default:
		return nil, badField("status")
	}
	return json.Marshal(order)
}

// SeedNews inserts n plain articles and returns their payloads, newest first.
func (s *Server) SeedNews(t *testing.T, n int) []model.NewsItem {
	t.Helper()
	items := make([]model.NewsItem, 0, n)
	for i := 0; i < n; i++ {
		row := record{ID: uuid.NewString(), Resource: "news", CreatedAt: time.Now().Add(time.Duration(i) * time.Millisecond)}
		if err := s.DB.Create(&row).Error; err != nil {
			t.Fatalf("seed news: %v", err)
		}
		item := model.NewsItem{
			ID:        row.Seq,
			Title:     &model.Localized{Uz: fmt.Sprintf("Yangilik %d", i+1), Ru: fmt.Sprintf("Новость %d", i+1)},
			Text:      model.Localized{Uz: "Matn", Ru: "Текст"},
			CreatedAt: row.CreatedAt.Format(time.RFC3339),
		}
		payload, _ := json.Marshal(item)
		row.Payload = payload
		if err := s.DB.Save(&row).Error; err != nil {
			t.Fatalf("seed news: %v", err)
		}
		items = append(items, item)
	}
	// newest first, matching list order
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// SeedCategory inserts one category and returns it.
func (s *Server) SeedCategory(t *testing.T, name model.Localized) model.Category {
	t.Helper()
	row := record{ID: uuid.NewString(), Resource: "categories", CreatedAt: time.Now()}
	if err := s.DB.Create(&row).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	category := model.Category{ID: row.ID, Name: name}
	row.Payload, _ = json.Marshal(category)
	if err := s.DB.Save(&row).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

// SeedOrder inserts one storefront order and returns it.
func (s *Server) SeedOrder(t *testing.T, firstName, phone, modelName string) model.Order {
	t.Helper()
	row := record{ID: uuid.NewString(), Resource: "orders", CreatedAt: time.Now()}
	if err := s.DB.Create(&row).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	order := model.Order{
		ID:          row.ID,
		FirstName:   firstName,
		PhoneNumber: phone,
		ModelName:   modelName,
		Status:      model.OrderNotCalled,
		CreatedAt:   row.CreatedAt.Format(time.RFC3339),
	}
	row.Payload, _ = json.Marshal(order)
	if err := s.DB.Save(&row).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}
