package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/uniadvisor/internal/app/catalog"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/middleware"
)

// CatalogController exposes read-only catalog lookups
type CatalogController struct {
	catalogs *catalog.Registry
	logger   zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogs *catalog.Registry, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogs: catalogs,
		logger:   logger,
	}
}

// ListUniversities godoc
// @Summary List supported universities
// @Description Lists every university with the university_id used by the advisor tools and whether its catalog is loaded.
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.UniversityResponse}
// @Router /catalog/universities [get]
func (c *CatalogController) ListUniversities(ctx *gin.Context) {
	loaded := make(map[string]bool)
	for _, code := range c.catalogs.Loaded() {
		loaded[code] = true
	}

	universities := make([]dto.UniversityResponse, 0, len(catalog.Universities))
	for i, code := range catalog.Universities {
		universities = append(universities, dto.UniversityResponse{ID: i, Code: code, Loaded: loaded[code]})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: universities})
}

// LookupCourses godoc
// @Summary Look up courses by id prefix
// @Description Returns every course whose id starts with the prefix, ignoring case, in catalog order. Without a university the default catalog is used.
// @Tags catalog
// @Produce json
// @Param prefix query string true "Course id prefix, such as CS"
// @Param university query string false "University code or name"
// @Success 200 {object} dto.APIResponse{data=dto.CatalogLookupResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing prefix or unknown university"
// @Failure 404 {object} dto.ErrorResponse "Catalog not loaded"
// @Router /catalog/courses [get]
func (c *CatalogController) LookupCourses(ctx *gin.Context) {
	var req dto.CatalogLookupRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}

	var (
		cat *catalog.Catalog
		err error
	)
	if req.University == "" {
		cat, err = c.catalogs.Default()
	} else {
		cat, err = c.catalogs.Get(req.University)
	}
	if err != nil {
		c.logger.Debug().Err(err).Str("university", req.University).Msg("Catalog lookup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	prefix := strings.ToUpper(strings.TrimSpace(req.Prefix))
	courses := cat.Lookup(prefix)

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.CatalogLookupResponse{
		University: cat.University(),
		Prefix:     prefix,
		Courses:    dto.NewCourseResponses(courses),
	}})
}
