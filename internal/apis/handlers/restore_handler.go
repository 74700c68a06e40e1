package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"restorebot/internal/apis/dtos"
	"restorebot/internal/services"
	"restorebot/internal/utils"
)

type RestoreHandler struct {
	restoreService services.RestoreService
}

func NewRestoreHandler(restoreService services.RestoreService) *RestoreHandler {
	if restoreService == nil {
		log.Fatal("Restore service cannot be nil")
	}
	return &RestoreHandler{
		restoreService: restoreService,
	}
}

// StartRun launches a restoration run over the captured metadata directory.
// The run executes asynchronously; the response carries its identifier.
func (h *RestoreHandler) StartRun(c *gin.Context) {
	var req dtos.StartRunRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, dtos.Response{
			Success: false,
			Error:   utils.ToStringPtr(err.Error()),
		})
		return
	}

	response, statusCode, err := h.restoreService.StartRun(&req)
	if err != nil {
		c.JSON(int(statusCode), dtos.Response{
			Success: false,
			Error:   utils.ToStringPtr(err.Error()),
		})
		return
	}

	c.JSON(int(statusCode), dtos.Response{
		Success: true,
		Data:    response,
	})
}

func (h *RestoreHandler) GetRun(c *gin.Context) {
	summary, statusCode, err := h.restoreService.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(int(statusCode), dtos.Response{
			Success: false,
			Error:   utils.ToStringPtr(err.Error()),
		})
		return
	}

	c.JSON(int(statusCode), dtos.Response{
		Success: true,
		Data:    summary,
	})
}

func (h *RestoreHandler) ListRuns(c *gin.Context) {
	summaries, statusCode, err := h.restoreService.ListRuns()
	if err != nil {
		c.JSON(int(statusCode), dtos.Response{
			Success: false,
			Error:   utils.ToStringPtr(err.Error()),
		})
		return
	}

	c.JSON(int(statusCode), dtos.Response{
		Success: true,
		Data:    summaries,
	})
}

func (h *RestoreHandler) CancelRun(c *gin.Context) {
	statusCode, err := h.restoreService.CancelRun(c.Param("id"))
	if err != nil {
		c.JSON(int(statusCode), dtos.Response{
			Success: false,
			Error:   utils.ToStringPtr(err.Error()),
		})
		return
	}

	c.JSON(int(statusCode), dtos.Response{
		Success: true,
		Data:    "Run cancellation requested; in-flight collections will finish",
	})
}
