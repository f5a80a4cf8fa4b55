package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shiftline/rota-api/internal/middleware"
	"github.com/shiftline/rota-api/internal/models"
	"github.com/shiftline/rota-api/internal/service"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// callerEmployee resolves the roster record linked to the authenticated user.
func callerEmployee(c *gin.Context, employees *service.EmployeeService) (*models.Employee, error) {
	claims := claimsFromContext(c)
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	return employees.GetByUserID(c.Request.Context(), claims.UserID)
}

// requireEmployeeAccess checks that the caller may act on the given employee.
// Managers may act on anyone; employees only on their own record.
func requireEmployeeAccess(c *gin.Context, employees *service.EmployeeService, employeeID string) error {
	claims := claimsFromContext(c)
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if claims.Role == models.RoleManager {
		return nil
	}

	self, err := employees.GetByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		return err
	}
	if self.ID != employeeID {
		return appErrors.ErrForbidden
	}

	return nil
}
