package request

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type RegisterRequest struct {
	TeamName    string   `json:"team_name,omitempty"`
	TeamMembers []string `json:"team_members,omitempty"`
}

func (req *RegisterRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.TeamName, validation.Length(0, 100)),
	)
	if err != nil {
		return err
	}

	for _, email := range req.TeamMembers {
		if err = validation.Validate(email, validation.Required, is.Email); err != nil {
			return fmt.Errorf("team member %q: %w", email, err)
		}
	}

	return nil
}

type AddMemberRequest struct {
	Email string `json:"email"`
}

func (req *AddMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}
