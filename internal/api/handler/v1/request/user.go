package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// UpdateProfileRequest carries only the fields the caller wants to
// change. Absent fields stay nil and are never written.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (req *UpdateProfileRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(2, 50)),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
	)
	if err != nil {
		return err
	}

	if req.Password != nil {
		return validatePassword(*req.Password)
	}

	return nil
}
