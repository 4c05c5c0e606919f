// Package middleware holds the gateway's Fiber middleware chain: session
// resolution, CSRF enforcement and the user/project/fuzzer/revision
// hierarchy resolvers every nested route depends on. Grounded on the
// teacher's auth.Authorize composable-middleware shape
// (components/ledger/internal/adapters/http/in/routes.go), generalized
// from midaz's bearer-token check into the cookie/CSRF scheme the original
// dependency-injection chain at original_source/api_gateway/app/api/depends.py
// implements.
package middleware

const (
	CookieSessionID    = "SESSION_ID"
	CookieUserID       = "USER_ID"
	CookieCSRFToken    = "CSRF_TOKEN"
	CookieDeviceCookie = "DEVICE_COOKIE"

	HeaderCSRFToken = "X-CSRF-TOKEN"
)

const (
	localUser       = "auth.user"
	localTargetUser = "hierarchy.target_user"
	localProject    = "hierarchy.project"
	localFuzzer     = "hierarchy.fuzzer"
	localRevision   = "hierarchy.revision"
)
