package validation

import (
	"fmt"

	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register adds the domain validators to gin's binding engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("question_type", questionType); err != nil {
		return err
	}
	return v.RegisterValidation("role_name", roleName)
}

func questionType(fl validator.FieldLevel) bool {
	return model.QuestionType(fl.Field().String()).IsValid()
}

func roleName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	for _, r := range model.RoleNames {
		if r == name {
			return true
		}
	}
	return false
}
