package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"prorent/internal/app/dto"
	"prorent/internal/infra/validation"
)

// FormsHandler exposes the form schemas so the browser and server agree on rules.
type FormsHandler struct {
	Validator *validation.Validator
}

func (h FormsHandler) PeakRate(c *gin.Context) {
	var form dto.PeakRateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Validator.Struct(form); err != nil {
		respondError(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, dto.FormCheck{Valid: true})
}

var _ FormsHTTP = FormsHandler{}
