package router

import "github.com/gin-gonic/gin"

// Module registers the routes of one feature on the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
