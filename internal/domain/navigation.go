package domain

import (
	"context"
	"errors"
)

// Screen names a host view the app can navigate to.
type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenRegister Screen = "register"
	ScreenAdmin    Screen = "admin"
	ScreenUser     Screen = "user"
	ScreenCanvas   Screen = "canvas"
)

// ErrUnknownScreen is returned by navigators asked for a screen they cannot show.
var ErrUnknownScreen = errors.New("unknown screen")

// Navigator is implemented by the host shell. The canvas only ever asks for
// a screen; window lifecycle stays with the host.
type Navigator interface {
	Navigate(ctx context.Context, screen Screen) error
}

// Valid reports whether s is one of the known screens.
func (s Screen) Valid() bool {
	switch s {
	case ScreenLogin, ScreenRegister, ScreenAdmin, ScreenUser, ScreenCanvas:
		return true
	}
	return false
}
