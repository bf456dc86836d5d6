package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":    "pong",
		"service":    "tianguis-api",
		"local_time": time.Now().Local(),
	})
}
