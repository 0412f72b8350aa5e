package services

import (
	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
)

// Parameter shapes validated before a path or query is built.

type usernameParam struct {
	Username string `json:"username" validate:"required"`
}

type idParam struct {
	ID int64 `json:"id" validate:"gt=0"`
}

type hikeIDParam struct {
	HikeID int64 `json:"hikeId" validate:"gt=0"`
}

type nameParam struct {
	Name string `json:"name" validate:"required,max=100"`
}

// nothingToUpdate is returned for patches that change nothing; each call
// yields a fresh value callers may keep or modify.
func nothingToUpdate() *gateway.Error {
	return &gateway.Error{Kind: gateway.KindValidation, Message: "nothing to update"}
}
