package service

import "github.com/rl1809/console-cart/internal/apperrors"

var (
	ErrInvalidQuantity   = apperrors.InputFormat("INVALID_QUANTITY", "quantity must be a positive integer")
	ErrProductNotFound   = apperrors.BusinessRule("PRODUCT_NOT_FOUND", "product not found")
	ErrLineNotFound      = apperrors.BusinessRule("LINE_NOT_FOUND", "product not in cart")
	ErrInsufficientStock = apperrors.BusinessRule("INSUFFICIENT_STOCK", "insufficient stock")
	ErrEmptyCart         = apperrors.BusinessRule("EMPTY_CART", "cart is empty")
)
