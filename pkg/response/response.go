package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers return bodies exactly as the domain objects serialize; no
// extra envelope. Errors always look like {"error": "..."}.

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
