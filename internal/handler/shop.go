package handler

import (
	"errors"
	"net/http"

	"saribill/internal/dto"
	"saribill/internal/model"
	"saribill/internal/repository"
	"saribill/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ShopHandler manages the shop settings singleton. Thin enough that it talks
// to the repository directly.
type ShopHandler struct {
	repo repository.ShopRepository
	rdb  *redis.Client
}

func NewShopHandler(repo repository.ShopRepository, rdb *redis.Client) *ShopHandler {
	return &ShopHandler{repo: repo, rdb: rdb}
}

// Get godoc
// @Summary      Get shop settings
// @Tags         shop
// @Produce      json
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  apierror.APIError "settings not yet configured"
// @Security     BearerAuth
// @Router       /v1/shop [get]
func (h *ShopHandler) Get(c *gin.Context) {
	shop, err := h.repo.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondServiceError(c, service.ErrNotFound)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShopResponse(shop))
}

// Put godoc
// @Summary      Replace shop settings
// @Description  Full replacement of the shop profile. The public viewer cache is invalidated on success.
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        shop  body      dto.UpdateShopRequest  true  "Shop profile"
// @Success      200   {object}  dto.ShopResponse
// @Failure      422   {object}  apierror.ValidationError
// @Security     BearerAuth
// @Router       /v1/shop [put]
func (h *ShopHandler) Put(c *gin.Context) {
	var req dto.UpdateShopRequest
	if !bindAndValidate(c, &req) {
		return
	}
	shop := &model.ShopDetails{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		GST:     req.GST,
		Logo:    req.Logo,
		UPIID:   req.UPIID,
	}
	if err := h.repo.Put(c.Request.Context(), shop); err != nil {
		respondServiceError(c, err)
		return
	}
	service.InvalidateShopCache(c.Request.Context(), h.rdb)
	c.JSON(http.StatusOK, toShopResponse(shop))
}

func toShopResponse(s *model.ShopDetails) dto.ShopResponse {
	return dto.ShopResponse{
		Name:    s.Name,
		Address: s.Address,
		Phone:   s.Phone,
		GST:     s.GST,
		Logo:    s.Logo,
		UPIID:   s.UPIID,
	}
}
