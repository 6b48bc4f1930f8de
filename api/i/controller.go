package i

import "github.com/gin-gonic/gin"

// Controller mounts a group of routes on the router.
// Public routes are open; protected routes sit behind the authorization middleware.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
