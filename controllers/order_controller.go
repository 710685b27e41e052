package controllers

import (
	"errors"
	"log"
	"net/http"

	"art-store/models"
	"art-store/repositories"
	"art-store/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService *services.OrderService
	emailService *services.EmailService
}

func NewOrderController(orderService *services.OrderService, emailService *services.EmailService) *OrderController {
	return &OrderController{orderService: orderService, emailService: emailService}
}

// PlaceOrder godoc
// @Summary Place an order from the current cart
// @Description Validates stock for every cart line, reserves it, creates a PENDING order and clears the cart
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.PlaceOrderRequest true "Shipping address"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	order, err := ctrl.orderService.PlaceOrder(c.Request.Context(), userID, req.ShippingAddress)
	if err != nil {
		var stockErr *services.InsufficientStockError
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Message: "Cart is empty",
			})
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, models.Response{
				Success: false,
				Message: stockErr.Error(),
				Data:    stockErr,
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Failed to place order",
				Error:   err.Error(),
			})
		}
		return
	}

	if ctrl.emailService != nil {
		email := c.GetString("user_email")
		go func() {
			if err := ctrl.emailService.SendOrderConfirmationEmail(email, order.ID, order.TotalAmount); err != nil {
				log.Printf("failed to send order confirmation for %s: %v", order.ID, err)
			}
		}()
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

// GetUserOrders godoc
// @Summary List the current user's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /orders [get]
func (ctrl *OrderController) GetUserOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	orders, err := ctrl.orderService.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve orders",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Orders retrieved successfully",
		Data:    orders,
	})
}

// GetOrderByID godoc
// @Summary Get an order by id
// @Description Customers can only access their own orders; admins can access any
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("user_id")
	role := c.GetString("user_role")

	order, err := ctrl.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve order",
			Error:   err.Error(),
		})
		return
	}

	if order.UserID != userID && role != "admin" {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Success: false,
			Message: "Access denied",
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order retrieved successfully",
		Data:    order,
	})
}

// GetAllOrders godoc
// @Summary List all orders
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := getPaginationParams(c)

	orders, total, err := ctrl.orderService.GetAllOrders(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to retrieve orders",
			Error:   err.Error(),
		})
		return
	}

	totalPages := (total + limit - 1) / limit
	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved successfully",
		Data:    orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}

// UpdateOrderStatus godoc
// @Summary Update an order's status
// @Description Only forward transitions are allowed (PENDING -> CONFIRMED -> SHIPPED -> DELIVERED, with CANCELLED from PENDING or CONFIRMED)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Message: "Order not found",
			})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Message: "Invalid status transition",
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Failed to update order status",
				Error:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Order status updated",
		Data:    order,
	})
}
