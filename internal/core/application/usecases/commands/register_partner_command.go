package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/partner"
	"ordering/internal/pkg/guard"
)

var ErrRegisterPartnerCommandIsNotConstructed = errors.New(
	"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
)

// RegisterPartnerCommand adds a delivery partner to the registry.
type RegisterPartnerCommand struct { //nolint:recvcheck //using for validation
	name string

	guard guard.ConstructorGuard
}

func NewRegisterPartnerCommand(name string) (RegisterPartnerCommand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RegisterPartnerCommand{}, partner.ErrNameIsRequired
	}

	return RegisterPartnerCommand{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}

func (c RegisterPartnerCommand) Name() string {
	return c.name
}
