package http

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "stayscope/internal/errors"
	v1 "stayscope/pkg/contracts/api/v1"
)

// QueryBinder parses and validates the explorer query strings. Binding
// failures come back as APIErrors so the RFC 7807 handler renders them
// the same way as every other request error.
type QueryBinder struct {
	validator *validator.Validate
}

// NewQueryBinder creates a binder that reports fields by their JSON names
func NewQueryBinder() *QueryBinder {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &QueryBinder{validator: v}
}

// Bounds binds the six optional range bounds from the query string
func (b *QueryBinder) Bounds(r *http.Request) (*v1.BoundsQuery, error) {
	query, err := bindBounds(r)
	if err != nil {
		return nil, err
	}

	if err := b.check(query); err != nil {
		return nil, err
	}
	return query, nil
}

// Listings binds the shared bounds plus the row cap
func (b *QueryBinder) Listings(r *http.Request) (*v1.ListingsQuery, error) {
	bounds, err := bindBounds(r)
	if err != nil {
		return nil, err
	}

	query := &v1.ListingsQuery{BoundsQuery: *bounds}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apierrors.ErrValidation("limit", "limit must be a whole number")
		}
		query.Limit = limit
	}

	if err := b.check(query); err != nil {
		return nil, err
	}
	return query, nil
}

// bindBounds reads the raw bound parameters without running struct validation
func bindBounds(r *http.Request) (*v1.BoundsQuery, error) {
	query := &v1.BoundsQuery{}

	var err error
	if query.MinPrice, err = floatParam(r, "min_price"); err != nil {
		return nil, err
	}
	if query.MaxPrice, err = floatParam(r, "max_price"); err != nil {
		return nil, err
	}
	if query.MinRooms, err = floatParam(r, "min_rooms"); err != nil {
		return nil, err
	}
	if query.MaxRooms, err = floatParam(r, "max_rooms"); err != nil {
		return nil, err
	}
	if query.MinReview, err = floatParam(r, "min_review"); err != nil {
		return nil, err
	}
	if query.MaxReview, err = floatParam(r, "max_review"); err != nil {
		return nil, err
	}

	return query, nil
}

// floatParam reads one optional numeric query parameter, nil when absent
func floatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apierrors.ErrValidation(name, fmt.Sprintf("%s must be a number", name))
	}
	return &value, nil
}

// check runs struct validation and converts failures to validation errors
func (b *QueryBinder) check(v interface{}) error {
	err := b.validator.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors []apierrors.ValidationError
	for _, fieldErr := range err.(validator.ValidationErrors) {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fieldErr.Field(),
			Message: formatFieldError(fieldErr),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

// formatFieldError formats validation error messages
func formatFieldError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
