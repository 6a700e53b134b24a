// Package api handles incoming HTTP requests: routing glue, request
// decoding and validation, and response formatting. It adapts HTTP concerns
// to the account and task services and owns the mapping from internal
// errors to client-safe status codes and messages.
package api
