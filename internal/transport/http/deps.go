package http

import (
	"github.com/uniform-shop-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/uniform-shop-api/internal/infrastructure/jwt"
	"github.com/uniform-shop-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       *dynamo.UserRepo
	SupplierRepo   *dynamo.SupplierRepo
	EmailTokenRepo *dynamo.EmailTokenRepo
	InviteRepo     *dynamo.InviteRepo
	Mailer         smtp.Mailer
	JWTProvider    *jwtinfra.Provider
}
