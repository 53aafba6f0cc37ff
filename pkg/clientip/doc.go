// Package clientip extracts the client IP address from HTTP requests.
//
// Headers are checked in this order:
//  1. CF-Connecting-IPv6 (Cloudflare)
//  2. X-Forwarded-For (leftmost entry)
//  3. CF-Connecting-IP (Cloudflare)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Invalid and unspecified addresses are skipped. When nothing usable is
// found GetIP returns "0.0.0.0".
package clientip
