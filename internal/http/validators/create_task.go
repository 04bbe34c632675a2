package validators

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"task-market.com/task-market/internal/constants"
	dto "task-market.com/task-market/internal/data_models"
	apperrors "task-market.com/task-market/internal/errors"
	"task-market.com/task-market/internal/services"
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) (services.CreateTaskInput, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", r.Title},
		{"description", r.Description},
		{"category", r.Category},
		{"location", r.Location},
	} {
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if isAbsent(r.Price) {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return services.CreateTaskInput{}, apperrors.Validation("missing required fields", missing...)
	}

	price, err := CoercePrice(r.Price, "price")
	if err != nil {
		return services.CreateTaskInput{}, err
	}

	priceType := constants.PriceType(strings.TrimSpace(r.PriceType))
	if priceType == "" {
		priceType = constants.PriceFixed
	}
	if !priceType.Valid() {
		return services.CreateTaskInput{}, apperrors.Validation("priceType must be fixed or hourly", "priceType")
	}

	images := r.Images
	if images == nil {
		images = []string{}
	}

	return services.CreateTaskInput{
		Title:       *r.Title,
		Description: *r.Description,
		Category:    *r.Category,
		Location:    *r.Location,
		Conditions:  r.Conditions,
		Price:       price,
		PriceType:   priceType,
		Deadline:    r.Deadline,
		Urgent:      r.Urgent,
		Remote:      r.Remote,
		Images:      images,
	}, nil
}

func ValidateUpdateTaskRequest(r *dto.UpdateTaskRequest) (services.UpdateTaskInput, error) {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", r.Title},
		{"description", r.Description},
		{"category", r.Category},
		{"location", r.Location},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return services.UpdateTaskInput{}, apperrors.Validation(f.name+" must not be empty", f.name)
		}
	}

	in := services.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		Conditions:  r.Conditions,
		Deadline:    r.Deadline,
		Urgent:      r.Urgent,
		Remote:      r.Remote,
		Images:      r.Images,
	}

	if !isAbsent(r.Price) {
		price, err := CoercePrice(r.Price, "price")
		if err != nil {
			return services.UpdateTaskInput{}, err
		}
		in.Price = &price
	}
	if r.PriceType != nil {
		pt := constants.PriceType(strings.TrimSpace(*r.PriceType))
		if !pt.Valid() {
			return services.UpdateTaskInput{}, apperrors.Validation("priceType must be fixed or hourly", "priceType")
		}
		in.PriceType = &pt
	}
	return in, nil
}

// maxPrice is the largest value a decimal(12,2) column holds.
var maxPrice = decimal.RequireFromString("9999999999.99")

// CoercePrice accepts a JSON number or a numeric string. The value must fit
// the price columns exactly: non-negative, at most two fractional digits and
// no larger than maxPrice.
func CoercePrice(raw json.RawMessage, field string) (decimal.Decimal, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(raw)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, apperrors.Validation(field+" must be a finite number", field)
	}
	if price.IsNegative() {
		return decimal.Decimal{}, apperrors.Validation(field+" must not be negative", field)
	}
	if !price.Equal(price.Round(2)) {
		return decimal.Decimal{}, apperrors.Validation(field+" must have at most two decimal places", field)
	}
	if price.GreaterThan(maxPrice) {
		return decimal.Decimal{}, apperrors.Validation(field+" must not exceed "+maxPrice.String(), field)
	}
	return price.Round(2), nil
}

func isAbsent(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null" || s == `""`
}
