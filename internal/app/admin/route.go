package admin

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler, requireOperator gin.HandlerFunc) {
	rg.GET("/login/", handler.LoginPage)
	rg.POST("/login/", handler.Login)
	rg.POST("/logout/", handler.Logout)

	gated := rg.Group("", requireOperator)
	{
		gated.GET("/", handler.Index)
		gated.GET("/boards/", handler.Boards)
	}
}
