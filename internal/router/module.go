package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its routes on the public
// root group and/or the /api group.
type Module interface {
	Register(public, api *gin.RouterGroup)
}
