package repository

import (
	"errors"
	"testing"
)

func TestTranslateDuplicate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want error
	}{
		{"Error 1062 (23000): Duplicate entry 'alice' for key 'users.uq_users_username'", ErrUsernameExists},
		{"Error 1062 (23000): Duplicate entry 'a@b.c' for key 'users.uq_users_email'", ErrEmailExists},
	}
	for _, c := range cases {
		if got := translateDuplicate(errors.New(c.in)); got != c.want {
			t.Errorf("translateDuplicate(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	plain := errors.New("connection refused")
	if got := translateDuplicate(plain); got != plain {
		t.Errorf("non-duplicate errors must pass through, got %v", got)
	}
}
