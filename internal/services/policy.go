package services

import (
	"weddingsite/internal/structures"

	"github.com/gookit/validate"
)

// CreatePolicy decides whether a create is committed. With Persist false the
// service answers with the would-be stats and leaves the document alone.
type CreatePolicy struct {
	Persist bool
}

// DemoPolicy is the policy for the guest-facing creates (RSVP, playlist, guest
// photos). Wishlist creates and admin uploads always persist.
func DemoPolicy(conf *structures.Config) CreatePolicy {
	return CreatePolicy{Persist: !conf.Demo.Enabled}
}

func validateInput(input interface{}) error {
	v := validate.Struct(input)
	if !v.Validate() {
		return invalid("%s", v.Errors.One())
	}
	return nil
}
