package validate

import (
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// phoneRule validates a phone number against libphonenumber metadata.
// Numbers without an international prefix are parsed in the given region.
func phoneRule(region string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		num, err := phonenumbers.Parse(fl.Field().String(), region)
		if err != nil {
			return false
		}
		return phonenumbers.IsValidNumber(num)
	}
}
