package common

// AuthorizationHeaderName is the HTTP header carrying the session token.
const AuthorizationHeaderName = "Authorization"

// BearerSchemePrefix is stripped from the Authorization header value before
// the token reaches the authentication core.
const BearerSchemePrefix = "Bearer "

// TestBearerToken is the fixed literal accepted in place of a signed token
// when Config.TestBearerEnabled is set. Intended for test harnesses only;
// never enable the flag in production.
const TestBearerToken = "test_bearer_token"

// SuperuserName is the account bootstrapped on first startup with all roles.
const SuperuserName = "superuser"

// SystemEditorName is recorded as the author of changes made by the
// application itself rather than a logged-in user.
const SystemEditorName = "SYSTEM"
