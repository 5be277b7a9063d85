// Package sanitizer strips markup from untrusted action arguments.
//
// The action dispatcher runs form-decoded string arguments through StripArgs
// before handing them to guards and handlers, so a handler never sees script
// tags or event-handler attributes in a plain string field:
//
//	args := sanitizer.StripArgs(map[string]any{
//	    "email": `<script>alert(1)</script>a@b.com`,
//	})
//	// args["email"] == "a@b.com"
//
// Only top-level string values are touched. JSON bodies with structured args
// keep their shape; sanitizing nested rich values is the handler's call.
package sanitizer
