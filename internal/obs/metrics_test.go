package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                   "/",
		"/metrics":           "/metrics",
		"/cashcards":         "/cashcards",
		"/cashcards/1":       "/cashcards/:id",
		"/cashcards/99999":   "/cashcards/:id",
		"/cashcards/1/extra": "/cashcards/1/extra",
		"/cashcards?page=1":  "/cashcards",
		"/auth/register":     "/auth/register",
		"/auth/login":        "/auth/login",
		"/healthz":           "/healthz",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
