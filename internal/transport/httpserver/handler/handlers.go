package handler

import (
	"dogwalk-app-go/internal/domain/access"
	dogdomain "dogwalk-app-go/internal/domain/dog"
	groupdomain "dogwalk-app-go/internal/domain/group"
	keyworddomain "dogwalk-app-go/internal/domain/keyword"
	matchdomain "dogwalk-app-go/internal/domain/match"
	statsdomain "dogwalk-app-go/internal/domain/stats"
	userdomain "dogwalk-app-go/internal/domain/user"
	walkdomain "dogwalk-app-go/internal/domain/walk"
	"dogwalk-app-go/internal/validation"
	"dogwalk-app-go/pkg/logger"
)

type Services struct {
	Users    *userdomain.Service
	Dogs     *dogdomain.Service
	Keywords *keyworddomain.Service
	Groups   *groupdomain.Service
	Walks    *walkdomain.Service
	Matches  *matchdomain.Service
	Stats    *statsdomain.Service
	Access   *access.Checker
}

type Handlers struct {
	Users    *userdomain.Service
	Dogs     *dogdomain.Service
	Keywords *keyworddomain.Service
	Groups   *groupdomain.Service
	Walks    *walkdomain.Service
	Matches  *matchdomain.Service
	Stats    *statsdomain.Service
	Access   *access.Checker

	validate *validation.Validator
	log      logger.Logger
}

func New(services Services, log logger.Logger) *Handlers {
	return &Handlers{
		Users:    services.Users,
		Dogs:     services.Dogs,
		Keywords: services.Keywords,
		Groups:   services.Groups,
		Walks:    services.Walks,
		Matches:  services.Matches,
		Stats:    services.Stats,
		Access:   services.Access,
		validate: validation.New(),
		log:      log,
	}
}
