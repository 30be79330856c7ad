package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shopdesk-pos/internal/presentation/http/dto/response"
)

// GetOperatorID extracts the operator ID from the Gin context
func GetOperatorID(c *gin.Context) string {
	return c.GetString("operator_id")
}

// requireOperator writes a 401 and returns false when no operator is set
func requireOperator(c *gin.Context) (string, bool) {
	operatorID := GetOperatorID(c)
	if operatorID == "" {
		response.Unauthorized(c, "Operator not authenticated")
		return "", false
	}
	return operatorID, true
}

// sessionID parses the :id path parameter as a cart session ID
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return uuid.Nil, false
	}
	return id, true
}
