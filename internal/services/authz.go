package services

import (
	"fmt"
	"slices"

	"github.com/adrianhmontero/ecommerce-shop-backend/internal/models"
	"github.com/adrianhmontero/ecommerce-shop-backend/pkg/apperrors"
)

// AuthorizeRoles is the role authorization gate run before every protected
// operation. An empty required set allows unconditionally. A missing user is
// a BadRequest: authorization cannot even be evaluated, which is distinct
// from a Forbidden denial. Otherwise the caller is allowed if it holds at
// least one of the required roles.
func AuthorizeRoles(user *models.User, requiredRoles []string) error {
	if len(requiredRoles) == 0 {
		return nil
	}
	if user == nil {
		return apperrors.BadRequest("user not found in request")
	}
	for _, role := range user.Roles {
		if slices.Contains(requiredRoles, role) {
			return nil
		}
	}
	return apperrors.Forbidden(fmt.Sprintf("user %s needs a valid role: %v", user.FullName, requiredRoles))
}
