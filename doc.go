// Package frontman is a front-controller dispatch layer for CMS-style hosts.
//
// The host platform keeps owning URL parsing, persistence and rendering;
// frontman owns what happens between "the URL resolved to this content" and
// "a response was sent": picking a controller, running POST action
// sub-requests behind guards, and caching replies.
//
// # Quick Start
//
// Assemble an App with New(), register controllers, and either mount it as
// an http.Handler or call Dispatch directly with the host's route
// resolution:
//
//	app, err := frontman.New(
//	    frontman.WithViewController("product", catalog),
//	    frontman.WithDefaultController(pages),
//	    frontman.WithNotFoundController(missing),
//	    frontman.WithCacheStore(cachestore.NewMemory()),
//	    frontman.WithNonceSecret(os.Getenv("NONCE_SECRET")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = app.Run(":8080")
//
// # Controllers
//
// A Controller answers GET requests for the handle it was registered under.
// Controllers that also expose POST actions implement [ActionProvider]:
//
//	func (c *Catalog) Actions() []frontman.Action {
//	    return []frontman.Action{
//	        {
//	            Name: "save",
//	            Func: c.save,
//	            Guards: []frontman.Guard{
//	                frontman.RequireNonce("save"),
//	                frontman.RequireCapability("edit_products"),
//	            },
//	        },
//	    }
//	}
//
// Guards run in declaration order and short-circuit on the first failure.
// Every rejected action dispatch looks identical from the outside, so
// callers cannot probe which guard stopped them.
//
// # Resolution
//
// Controllers register under (view kind, handle) pairs. Identifier-based
// registrations always win over type-based ones; admin pages resolve in
// their own namespace keyed by the "page" query parameter and never fall
// back to the default controller.
package frontman
