package store

import (
	"AtlasAdmin/internal/cli/api"
	"AtlasAdmin/internal/cli/model"
)

// Typed aliases for the per-resource stores, one per manageable entity.
type (
	News       = Resource[model.NewsItem, *model.NewsDraft]
	Banners    = Resource[model.BannerItem, *model.BannerDraft]
	Categories = Resource[model.Category, *model.CategoryDraft]
	Partners   = Resource[model.Partner, *model.PartnerDraft]
	Products   = Resource[model.Product, *model.ProductDraft]
	Orders     = Resource[model.Order, *model.OrderDraft]
)

func NewNews(c *api.Client) *News {
	return New[model.NewsItem](c, "/api/news", &model.NewsDraft{})
}

func NewBanners(c *api.Client) *Banners {
	return New[model.BannerItem](c, "/api/banners", &model.BannerDraft{})
}

func NewCategories(c *api.Client) *Categories {
	return New[model.Category](c, "/api/categories", &model.CategoryDraft{})
}

func NewPartners(c *api.Client) *Partners {
	return New[model.Partner](c, "/api/partners", &model.PartnerDraft{})
}

func NewProducts(c *api.Client) *Products {
	return New[model.Product](c, "/api/products", &model.ProductDraft{})
}

// NewOrders builds the orders store. Orders arrive from the storefront and
// are only ever patched (call status) from the back office.
func NewOrders(c *api.Client) *Orders {
	return New[model.Order](c, "/api/orders", &model.OrderDraft{}, ReadAndPatchOnly())
}
