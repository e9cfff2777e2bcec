package carthttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/http/mapper"
	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/adapters/notify"
	cartports "github.com/Apurer/rocketshoes-cart/internal/domains/cart/ports"
	apierrors "github.com/Apurer/rocketshoes-cart/internal/shared/errors"
)

var errInvalidProductID = errors.New("productId must be a positive integer")

// CartAPI wires HTTP transport with the cart service.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) *CartAPI {
	return &CartAPI{service: service}
}

// Register mounts the cart routes on r.
func (api *CartAPI) Register(r gin.IRouter) {
	r.GET("/cart", api.GetCart)
	r.POST("/cart/items/:productId", api.AddProduct)
	r.PUT("/cart/items/:productId", api.UpdateProductAmount)
	r.DELETE("/cart/items/:productId", api.RemoveProduct)
}

// Get /cart
// Returns the current cart with its totals
func (api *CartAPI) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.FromCart(api.service.Cart(c.Request.Context())))
}

// Post /cart/items/:productId
// Adds one unit of a product
func (api *CartAPI) AddProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	api.mutate(c, func(ctx context.Context) {
		api.service.AddProduct(ctx, id)
	})
}

// Put /cart/items/:productId
// Sets the amount of a product already in the cart
func (api *CartAPI) UpdateProductAmount(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	var payload mapper.UpdateAmount
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.NewValidationProblem(map[string]string{"amount": "amount is required and must be an integer"}).WithDetail(err.Error()))
		return
	}
	input := cartports.UpdateProductAmount{ProductID: id, Amount: *payload.Amount}
	api.mutate(c, func(ctx context.Context) {
		api.service.UpdateProductAmount(ctx, input)
	})
}

// Delete /cart/items/:productId
// Removes a product from the cart
func (api *CartAPI) RemoveProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}
	api.mutate(c, func(ctx context.Context) {
		api.service.RemoveProduct(ctx, id)
	})
}

func (api *CartAPI) mutate(c *gin.Context, call func(context.Context)) {
	ctx, collector := notify.WithCollector(c.Request.Context())
	call(ctx)
	c.JSON(http.StatusOK, mapper.FromMutation(api.service.Cart(ctx), collector.Messages()))
}

func parseProductID(c *gin.Context) (int64, bool) {
	value := c.Param("productId")
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		apierrors.Respond(c, apierrors.ErrBadRequest.
			WithDetail(fmt.Sprintf("%s: %q", errInvalidProductID, value)).
			WithExtension("parameter", "productId"))
		return 0, false
	}
	return id, true
}
