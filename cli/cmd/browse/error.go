package browse

import "github.com/ardnew/openr/prop"

var (
	ErrOutOfBounds  = prop.NewError("index out of range")
	ErrEditDeclined = prop.NewError("decline edit")
)
