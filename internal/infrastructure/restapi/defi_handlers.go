package restapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"defi_compare/internal/app/port"
	"defi_compare/internal/domain/entity"
)

// APIErrorResponse is the JSON envelope for all error responses.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// DefiHandler handles HTTP requests for DeFi positions and their comparison.
type DefiHandler struct {
	defiService port.DefiDataService
	logger      *zap.Logger
}

// NewDefiHandler creates a new DefiHandler instance.
func NewDefiHandler(ds port.DefiDataService, logger *zap.Logger) *DefiHandler {
	return &DefiHandler{
		defiService: ds,
		logger:      logger.Named("DefiHandler"),
	}
}

// GetDefiDataHandler returns a normalized snapshot of an address's DeFi
// positions from a single provider. The source query parameter selects the
// provider, defaulting to zerion.
func (h *DefiHandler) GetDefiDataHandler(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: entity.ErrInvalidAddress.Error() + ": " + address})
		return
	}

	source := entity.DataSource(strings.ToLower(c.DefaultQuery("source", string(entity.SourceZerion))))

	data, err := h.defiService.GetAddressDefiData(c.Request.Context(), address, source)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// CompareDefiDataHandler returns the full reconciliation of an address's
// positions across both providers.
func (h *DefiHandler) CompareDefiDataHandler(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: entity.ErrInvalidAddress.Error() + ": " + address})
		return
	}

	result, err := h.defiService.CompareAddressDefiData(c.Request.Context(), address)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *DefiHandler) writeError(c *gin.Context, err error) {
	var provErr *entity.ProviderError

	switch {
	case errors.Is(err, entity.ErrUnknownSource):
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrConfigurationMissing):
		c.JSON(http.StatusServiceUnavailable, APIErrorResponse{Error: err.Error()})
	case errors.As(err, &provErr):
		h.logger.Error("Upstream provider failed",
			zap.String("provider", provErr.Provider),
			zap.String("chain", provErr.Chain),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, APIErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIErrorResponse{Error: err.Error()})
	}
}
