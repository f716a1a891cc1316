package services

import (
	"github.com/smart450/site/geoip"
	"github.com/smart450/site/mailer"
	"github.com/smart450/site/repositories"
)

// Services holds all service instances
type Services struct {
	Access  AccessService
	Contact ContactService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, sender mailer.Sender, locator geoip.Locator, opts ContactOptions) *Services {
	return &Services{
		Access:  NewAccessService(repos.Access),
		Contact: NewContactService(sender, repos.Contact, locator, opts),
	}
}
