// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It binds requests, validates input using the validation package,
// calls the appropriate service and wraps the result in the response
// envelope. Store failures are turned into HTTP errors here, with the
// fixed message of each route.
package handler
