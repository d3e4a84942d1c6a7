package router

import "github.com/gin-gonic/gin"

// Module is implemented by each feature area (auth, contacts, profile) to
// mount its routes on the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
