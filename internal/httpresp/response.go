package httpresp

import "github.com/gin-gonic/gin"

type SuccessResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, SuccessResponse{Status: "success", Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(201, SuccessResponse{Status: "success", Data: data})
}
