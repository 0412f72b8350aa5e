package fakeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type fieldError struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Msg  string `json:"msg"`
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// invalid answers 400 with a field error list.
func invalid(c *gin.Context, errs ...fieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": errs})
}

func field(path, msg string) fieldError {
	return fieldError{Type: "field", Path: path, Msg: msg}
}

// bindError turns a gin binding failure into the field error shape.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		out = append(out, field(strings.ToLower(name[:1])+name[1:], "Invalid value"))
	}
	invalid(c, out...)
}
