// Package api handles incoming HTTP requests, routing, request
// validation, and response formatting. It adapts external HTTP clients
// to the internal stores, authentication services, agents, and the
// asynchronous generation task queue.
package api
