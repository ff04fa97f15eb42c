package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/app/visualization"
	"github.com/yigit/uniadvisor/internal/middleware"
)

// VisualizationController turns course payloads into render trees
type VisualizationController struct {
	logger zerolog.Logger
}

// NewVisualizationController creates a new VisualizationController
func NewVisualizationController(logger zerolog.Logger) *VisualizationController {
	return &VisualizationController{logger: logger}
}

// BuildTree godoc
// @Summary Build a course tree
// @Description Groups courses by year and term under a "Course" root. Courses listed in expanded get their prerequisites as children. Roadmap limits the tree to CS roadmap subjects unless only_prefixes is given. Returns null for an empty course list.
// @Tags visualization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TreeRequest true "Courses to arrange"
// @Success 200 {object} visualization.Node
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /visualization/tree [post]
func (c *VisualizationController) BuildTree(ctx *gin.Context) {
	var req dto.TreeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	expanded := make(map[string]bool, len(req.Expanded))
	for _, id := range req.Expanded {
		expanded[id] = true
	}

	only := req.OnlyPrefixes
	if len(only) == 0 && req.Roadmap {
		only = visualization.CSRoadmapPrefixes
	}

	tree := visualization.BuildTree(req.Courses, expanded, visualization.TreeOptions{
		OnlyPrefixes: only,
	})
	c.logger.Debug().Int("courses", len(req.Courses)).Int("expanded", len(expanded)).Msg("Course tree built")

	ctx.JSON(http.StatusOK, tree)
}
