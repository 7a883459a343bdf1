package providers

import (
	"github.com/gookit/validate"

	"blogd/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	return nil
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}
