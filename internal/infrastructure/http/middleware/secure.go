package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecurityHeaders hardens every response. This service serves JSON to
// programmatic clients only, so the content security policy forbids embedding
// outright rather than allowing same-origin resources. Dev mode relaxes the
// TLS-dependent parts so plain-HTTP localhost keeps working.
func SecurityHeaders(dev bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		IsDevelopment:         dev,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
	}).Handler
}
