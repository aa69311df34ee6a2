package utils

import (
	"math"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	RegisterCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("latitude", ValidateLatitudeRule)
	v.RegisterValidation("longitude", ValidateLongitudeRule)
}

func ValidateLatitudeRule(fl validator.FieldLevel) bool {
	return ValidateLatitude(fl.Field().Float())
}

func ValidateLongitudeRule(fl validator.FieldLevel) bool {
	return ValidateLongitude(fl.Field().Float())
}

// ValidateLatitude accepts finite degrees in [-90, 90].
func ValidateLatitude(latitude float64) bool {
	return !math.IsNaN(latitude) && !math.IsInf(latitude, 0) &&
		latitude >= -90 && latitude <= 90
}

// ValidateLongitude accepts finite degrees in [-180, 180].
func ValidateLongitude(longitude float64) bool {
	return !math.IsNaN(longitude) && !math.IsInf(longitude, 0) &&
		longitude >= -180 && longitude <= 180
}
