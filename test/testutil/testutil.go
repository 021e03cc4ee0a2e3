package testutil

import (
	"net/http"
	"testing"
)

// AssertSuccess checks that err is nil and returns true.
// Otherwise it logs args, fails the test with the error and returns false.
func AssertSuccess(t *testing.T, err error, args ...any) bool {
	if err != nil {
		for _, arg := range args {
			t.Log(arg)
		}
		t.Error(err)
		return false
	}
	return true
}

// RequireSuccess is AssertSuccess that stops the test.
func RequireSuccess(t *testing.T, err error, args ...any) bool {
	if err != nil {
		for _, arg := range args {
			t.Log(arg)
		}
		t.Fatal(err)
		return false
	}
	return true
}

type RoundTripper func(r *http.Request) (*http.Response, error)

func (s RoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	return s(r)
}
