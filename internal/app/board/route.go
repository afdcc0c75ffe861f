package board

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg gin.IRoutes, handler Handler) {
	rg.GET("/", handler.RedirectToBoards)
	rg.GET("/boards/", handler.ListBoards)
	rg.POST("/boards/", handler.SubmitBoards)
	rg.GET("/boards/:title/", handler.GetBoardByTitle)
}
