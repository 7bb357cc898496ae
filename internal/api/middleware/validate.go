package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/api/response"
	"libraryapi/internal/validator"
)

const (
	bodyKey = "validated_body"
	idKey   = "validated_id"
)

// ValidateBody binds the JSON request body into T, validates every field in
// one pass and rejects with the aggregated message list on failure. The
// parsed body is stored in the context for the controller.
func ValidateBody[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			c.Abort()
			return
		}
		if msgs := validator.Check(req); len(msgs) > 0 {
			response.Error(c, http.StatusBadRequest, validator.JoinMessages(msgs))
			c.Abort()
			return
		}
		c.Set(bodyKey, &req)
		c.Next()
	}
}

// Body returns the request body parsed by ValidateBody.
func Body[T any](c *gin.Context) *T {
	v, _ := c.Get(bodyKey)
	body, _ := v.(*T)
	return body
}

// ValidateIDParam rejects requests whose id path parameter is not a positive
// integer, before any repository is touched.
func ValidateIDParam(entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest,
				fmt.Sprintf("Invalid %s ID. ID must be a positive number", entity))
			c.Abort()
			return
		}
		c.Set(idKey, id)
		c.Next()
	}
}

// ValidateUserIDParam is ValidateIDParam for users, with one exception: a
// request carrying a searchTerm query argument may omit the id entirely.
func ValidateUserIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			if c.Query("searchTerm") != "" {
				c.Next()
				return
			}
			response.Error(c, http.StatusBadRequest,
				"Invalid user ID. ID must be a positive number")
			c.Abort()
			return
		}
		c.Set(idKey, id)
		c.Next()
	}
}

// ID returns the id parsed by the id-param middleware.
func ID(c *gin.Context) int64 {
	v, _ := c.Get(idKey)
	id, _ := v.(int64)
	return id
}
