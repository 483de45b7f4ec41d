// Package sig implements the STOW request-signing scheme used to authenticate
// HTTP requests between internal stow services: a client derives a canonical
// string from the request it's about to send (verb, a handful of standard
// headers, the vendor header block, and the resource), signs it with the
// shared admin secret, and attaches the result as an Authorization header.
// When the request arrives, the server rebuilds the exact same canonical
// string, recomputes the signature with its own copy of the secret, and
// accepts the request only if both the key id and the signature match. The
// secret itself never travels over the wire.
//
// Signing and verification share one canonical-string builder, so the two
// sides cannot drift apart. Every function in this package is a pure function
// of its inputs and safe for concurrent use; the only external call is the
// credential lookup performed by Authenticator, once per verification.
package sig
