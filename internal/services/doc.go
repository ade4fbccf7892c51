// Package services defines the client contracts for the external catalog
// and the card host, plus their HTTP implementations.
//
// Responses are decoded into typed structs at the boundary; unknown fields
// are dropped so loosely structured payloads never leak into the planner.
package services
