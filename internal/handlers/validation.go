package handlers

import (
	"sync"

	"vacuum_packaging/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorsOnce sync.Once

// registerValidators adds the `material` and `vacuum_level` tags to gin's
// binding validator so request bodies are checked before they reach the core.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("material", func(fl validator.FieldLevel) bool {
			_, err := models.ParseMaterial(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("vacuum_level", func(fl validator.FieldLevel) bool {
			_, err := models.ParseVacuumLevel(fl.Field().String())
			return err == nil
		})
	})
}
