package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/hynox/pkg/repository"
)

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// hardDeleteParam reads ?hardDelete=. Absent means a soft delete.
func hardDeleteParam(c *gin.Context) (bool, error) {
	parsed, err := parseOptionalBool(c.Query("hardDelete"))
	if err != nil {
		return false, newValidationError("hardDelete", "invalid_hard_delete", "hardDelete must be true or false")
	}
	return parsed != nil && *parsed, nil
}

type deleteResponse struct {
	Message string `json:"message"`
}

func deleteMessage(entity string, outcome repository.DeleteOutcome) deleteResponse {
	if outcome == repository.HardDeleted {
		return deleteResponse{Message: entity + " permanently deleted"}
	}
	return deleteResponse{Message: entity + " soft-deleted"}
}
