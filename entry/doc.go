// Package entry implements the entry-point logic shared by stow services: an
// Application wrapper that sets up structured logging and signal-driven
// shutdown, server runners for HTTP and gRPC, logging middleware that tags
// every request with an x-stow-request-id, and signature-checking middleware
// that rejects requests failing STOW verification.
//
// Example usage:
//
//	func main() {
//		app := entry.NewApplication("bucketd")
//		defer app.Stop()
//
//		provider := credentials.NewFileProvider("/etc/stow/credentials", "default")
//		authenticator := sig.NewAuthenticator(provider)
//
//		h := entry.RequireSignature(authenticator)(&bucketHandler{})
//		entry.RunServer(app, h, "", 5000)
//	}
package entry
