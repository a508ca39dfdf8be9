package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type apiResponse struct {
	Status  string   `json:"status"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func respondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{Status: "success", Data: data})
}

func respondSuccessMessage(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, apiResponse{Status: "success", Data: data, Message: message})
}
