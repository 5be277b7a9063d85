// Package nonce issues and verifies stateless action tokens.
//
// A token is an HMAC-SHA256 over the action name, the acting principal and a
// coarse time window, so no server-side token storage is required. The host
// embeds a token in rendered pages via Issue and the dispatch layer checks it
// via Verify before running a guarded action:
//
//	m, err := nonce.New(os.Getenv("NONCE_SECRET"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	token := m.Issue("save_settings", userID)   // embed in the page
//	ok := m.Verify(token, "save_settings", userID)
//
// Tokens remain valid for the current and the previous window (between one
// and two lifetimes, 12–24 hours by default). They protect against CSRF, not
// against replay within the window.
package nonce
