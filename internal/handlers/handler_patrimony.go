package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/univenta/retail_ledger_app/internal/core/ports/services"
	"github.com/univenta/retail_ledger_app/internal/dto"
	"github.com/univenta/retail_ledger_app/internal/middleware"
)

// patrimonyHandler serves the live net-worth snapshot.
type patrimonyHandler struct {
	patrimonyService portssvc.PatrimonySvc
}

func registerPatrimonyRoutes(rg *gin.RouterGroup, patrimonyService portssvc.PatrimonySvc) {
	h := &patrimonyHandler{patrimonyService: patrimonyService}
	rg.GET("/patrimony", h.getPatrimony)
}

func (h *patrimonyHandler) getPatrimony(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.patrimonyService.GetPatrimony(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute patrimony", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute patrimony"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPatrimonyResponse(snapshot))
}
