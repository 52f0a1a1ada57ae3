package auth

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		e    *Error
		want string
	}{
		{"message wins", &Error{Err: ErrNoToken, Msg: "blah"}, "authentication error: blah"},
		{"falls back to err", &Error{Err: ErrNoToken}, "authentication error: no token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	e := &Error{Err: ErrNotLoggedIn}
	if !errors.Is(e, ErrNotLoggedIn) {
		t.Error("expected errors.Is to unwrap the underlying error")
	}
	wrapped := fmt.Errorf("outer: %w", e)
	if !errors.Is(wrapped, ErrNotLoggedIn) {
		t.Error("expected errors.Is to see through the wrapping")
	}
}

func TestIsInvalidAuthErr(t *testing.T) {
	type args struct {
		err error
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{"not logged in", args{&Error{Err: ErrNotLoggedIn}}, true},
		{"token expired", args{&Error{Err: ErrTokenExpired}}, true},
		{"no token", args{&Error{Err: ErrNoToken}}, true},
		{"transport failure", args{&Error{Err: errors.New("connection refused")}}, false},
		{"bare error", args{errors.New("blah")}, false},
		{"nil", args{nil}, false},
		{"wrapped auth error", args{fmt.Errorf("test: %w", &Error{Err: ErrNotLoggedIn})}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInvalidAuthErr(tt.args.err); got != tt.want {
				t.Errorf("IsInvalidAuthErr() = %v, want %v", got, tt.want)
			}
		})
	}
}
