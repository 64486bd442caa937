package controller

import (
	"strconv"

	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter, replying 400 on
// garbage so handlers can return immediately.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
