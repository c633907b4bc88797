package service

import "strings"

const (
	MsgProductRequired  = "Product ID is required"
	MsgQuantityPositive = "Quantity must be greater than 0"
	MsgQuantityRequired = "Quantity is required"
	MsgQuantityNegative = "Quantity cannot be negative"
	MsgItemNotFound     = "Item not found in cart"
	MsgQuantityTooLarge = "Quantity exceeds the maximum allowed"

	MsgUserNotFound  = "User not found"
	MsgInvalidEmail  = "Invalid email format"
	MsgNameRequired  = "Name is required"
	MsgEmailConflict = "Email already exists"
)

func ValidateAddItem(productID, quantity int64) error {
	if productID == 0 {
		return validationError(MsgProductRequired)
	}
	if quantity <= 0 {
		return validationError(MsgQuantityPositive)
	}
	return nil
}

func ValidateUpdateQuantity(quantity *int64) error {
	if quantity == nil {
		return validationError(MsgQuantityRequired)
	}
	if *quantity < 0 {
		return validationError(MsgQuantityNegative)
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return validationError(MsgInvalidEmail)
	}
	return nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validationError(MsgNameRequired)
	}
	return nil
}
