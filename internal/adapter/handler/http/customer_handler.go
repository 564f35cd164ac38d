package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/seedpay/braintree-sync/internal/domain/gateway"
	"github.com/seedpay/braintree-sync/internal/middleware/auth"
	"github.com/seedpay/braintree-sync/internal/usecase"
)

type CustomerHandler struct {
	customers *usecase.CustomerService
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewCustomerHandler(customers *usecase.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		validate:  validator.New(),
		logger:    logger,
	}
}

type createCustomerRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=255"`
	LastName  string `json:"last_name" validate:"omitempty,max=255"`
	Company   string `json:"company" validate:"omitempty,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Website   string `json:"website" validate:"omitempty,max=255"`
}

// GetOrCreateCustomer returns the authenticated entity's mirrored customer,
// creating one at the gateway on first use.
func (h *CustomerHandler) GetOrCreateCustomer(c echo.Context) error {
	entity, err := auth.RequireAuth(c)
	if err != nil {
		return err // RequireAuth already returns the JSON error response
	}

	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}

	email := req.Email
	if email == "" {
		email = entity.Email
	}

	customer, created, err := h.customers.GetOrCreate(c.Request().Context(), entity.EntityID, &gateway.CreateCustomerRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Email:     email,
		Phone:     req.Phone,
		Website:   req.Website,
	})
	if err != nil {
		return gatewayErrorResponse(c, h.logger, "failed to get or create customer", err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, customer)
}

type updateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=255"`
	LastName  string `json:"last_name" validate:"omitempty,max=255"`
	Company   string `json:"company" validate:"omitempty,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Website   string `json:"website" validate:"omitempty,max=255"`
}

// UpdateCustomer pushes field changes to the gateway and resyncs the mirror.
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	braintreeID := c.Param("braintree_id")

	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}

	customer, err := h.customers.Update(c.Request().Context(), braintreeID, &gateway.UpdateCustomerRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Email:     req.Email,
		Phone:     req.Phone,
		Website:   req.Website,
	})
	if err != nil {
		return gatewayErrorResponse(c, h.logger, "failed to update customer", err)
	}

	return c.JSON(http.StatusOK, customer)
}

// GetCustomer returns a mirrored customer by its gateway id.
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	braintreeID := c.Param("braintree_id")

	customer, err := h.customers.Get(c.Request().Context(), braintreeID)
	if err != nil {
		h.logger.Error("failed to get customer",
			zap.String("braintree_id", braintreeID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to get customer",
		})
	}
	if customer == nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Customer not found",
		})
	}

	return c.JSON(http.StatusOK, customer)
}
