package controllers

import (
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/services"
	"github.com/fennwick/brasserie/pkg/ctx"
)

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{service: services.NewDashboardService(db)}
}

// Stats handles GET /api/dashboard/stats/.
func (ctl *DashboardController) Stats(c *ctx.Context) {
	stats, err := ctl.service.Stats(c.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(stats)
}
