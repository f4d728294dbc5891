package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses a numeric route parameter. One helper instead of a
// variant per entity.
func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, fmt.Errorf("%s not found", name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, fmt.Errorf("Invalid %s", name)
	}

	return uint(id), nil
}
