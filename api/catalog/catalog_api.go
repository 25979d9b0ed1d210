package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"chatshop.GO/api"
	"chatshop.GO/bootstrap"
	entity "chatshop.GO/model/entity/catalog"
	catalogRepo "chatshop.GO/model/repository/catalog"
	"chatshop.GO/service/search"
)

func init() {
	api.RegisterModule("catalog", RegisterCatalogRoutes)
}

// VariantPrice is a variant with its discounted price and band.
type VariantPrice struct {
	entity.Variant
	EffectivePrice *int64 `json:"effectivePrice"`
	Band           string `json:"band,omitempty"`
}

type ProductDetail struct {
	entity.Product
	Variants []VariantPrice `json:"variants"`
}

func RegisterCatalogRoutes(apiGroup *echo.Group, svc *bootstrap.ServiceContext) {
	g := apiGroup.Group("/catalog")

	// GET /api/catalog/search?name=&color=&size=&priceRange=&id_cate= – stateless preview
	g.GET("/search", func(c echo.Context) error {
		start := time.Now()
		var entities []search.Entity
		for _, name := range []string{search.EntityName, search.EntityColor, search.EntitySize, search.EntityPriceRange, search.EntityCategoryID} {
			if v := c.QueryParam(name); v != "" {
				entities = append(entities, search.Entity{Entity: name, Value: v})
			}
		}

		filters, products, err := svc.Engine.Preview(c.Request().Context(), entities)
		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set(api.HeaderRequestDuration, strconv.FormatInt(duration, 10))
		if err != nil {
			svc.Logger.Error("catalog preview failed", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": search.FailureMessage().Text})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"filters":     filters,
			"total_count": len(products),
			"items":       search.SummaryViews(products),
		})
	})

	// GET /api/catalog/products/:id – one product with effective prices per variant
	g.GET("/products/:id", func(c echo.Context) error {
		getter, ok := svc.Catalog.(catalogRepo.Getter)
		if !ok {
			return c.JSON(http.StatusNotImplemented, echo.Map{"error": "catalog backend does not support lookups"})
		}
		p, err := getter.FindByID(c.Request().Context(), c.Param("id"))
		if errors.Is(err, catalogRepo.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		if err != nil {
			svc.Logger.Error("catalog lookup failed", "id", c.Param("id"), "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": search.FailureMessage().Text})
		}
		return c.JSON(http.StatusOK, toDetail(p))
	})

	// POST /api/catalog/import – bulk product upsert
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()
		writer, ok := svc.Catalog.(catalogRepo.Writer)
		if !ok {
			return c.JSON(http.StatusNotImplemented, echo.Map{"error": "catalog backend is read-only"})
		}

		var body struct {
			Items []entity.Product `json:"items"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}
		for i := range body.Items {
			if body.Items[i].ID == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "items[" + strconv.Itoa(i) + "].id is required"})
			}
		}

		err := writer.Upsert(c.Request().Context(), body.Items)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			svc.Logger.Error("catalog import failed", "items", len(body.Items), "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}
		c.Response().Header().Set(api.HeaderRequestDuration, strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"imported":            len(body.Items),
			"request_duration_ms": duration,
		})
	})
}

func toDetail(p *entity.Product) ProductDetail {
	out := ProductDetail{Product: *p, Variants: make([]VariantPrice, 0, len(p.Variants))}
	for _, v := range p.Variants {
		vp := VariantPrice{Variant: v}
		if price, ok := search.EffectivePrice(v); ok {
			vp.EffectivePrice = &price
			vp.Band = search.BandOf(price).String()
		}
		out.Variants = append(out.Variants, vp)
	}
	return out
}
