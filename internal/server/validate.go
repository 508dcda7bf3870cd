package server

import (
	"fmt"
	"strings"
)

const (
	maxTitleLength       = 512
	maxDescriptionLength = 8192
)

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	var parts []string
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s:%s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// validateProductRequest checks field constraints and returns a
// ValidationError listing every failing field.
func validateProductRequest(req *ProductRequest) error {
	errs := make(map[string]string)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs["title"] = "title is required"
	} else if len(title) > maxTitleLength {
		errs["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLength)
	}
	if len(req.Description) > maxDescriptionLength {
		errs["description"] = fmt.Sprintf("description must be at most %d characters", maxDescriptionLength)
	}
	if req.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if req.MRP < 0 {
		errs["mrp"] = "mrp must not be negative"
	}
	if req.SellingPrice < 0 {
		errs["selling_price"] = "selling price must not be negative"
	}
	if req.Rating < 0 || req.Rating > 5 {
		errs["rating"] = "rating must be between 0 and 5"
	}
	if req.Stock < 0 {
		errs["stock"] = "stock must not be negative"
	}
	if req.UnitsSold < 0 {
		errs["units_sold"] = "units sold must not be negative"
	}
	if req.ReturnRate < 0 || req.ReturnRate > 1 {
		errs["return_rate"] = "return rate must be between 0 and 1"
	}
	if req.ReviewCount < 0 {
		errs["review_count"] = "review count must not be negative"
	}
	if req.ComplaintCount < 0 {
		errs["complaint_count"] = "complaint count must not be negative"
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		errs["discount_percentage"] = "discount percentage must be between 0 and 100"
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
