// Package forms runs the submission flow of the consumer, seller and product
// forms: validate every field, then build or store the record.
package forms

import (
	"github.com/talkincode/vitrine/internal/validate"
)

// Banner texts shown after a submission.
const (
	MsgConsumerCreated = "Consumer registered successfully!"
	MsgSellerCreated   = "Seller registered successfully!"
	MsgFixErrors       = "Please fix the errors in the form."
	MsgProductCreated  = "Product registered successfully!"
	MsgProductUpdated  = "Product updated successfully!"
	MsgFixProduct      = "Please fix the errors in the product form."
	MsgProductMissing  = "The product being edited no longer exists."
)

// MsgProductDeleted is the banner after a confirmed delete.
func MsgProductDeleted(id string) string {
	return "Product " + id + " deleted successfully!"
}

// MsgAvailabilityChanged is the banner after a toggle.
func MsgAvailabilityChanged(id string) string {
	return "Availability status of product " + id + " changed!"
}

// MsgConfirmDelete is the question asked before removing a product.
func MsgConfirmDelete(id string) string {
	return "Are you sure you want to delete product " + id + "?"
}

var defaultValidator = validate.New()
