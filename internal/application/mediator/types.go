package mediator

import (
	"context"
	"fmt"
	"reflect"
)

// Request is a colony command or query, dispatched by its concrete type
type Request any

// Response is whatever the matching handler returns, usually a dtos value
type Response any

// RequestHandler serves one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a plain function to RequestHandler. It is also the
// shape of the next link passed to a Middleware.
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware wraps every dispatch, e.g. request logging and prometheus timing
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// Mediator routes colony commands and queries to their handlers
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
	RegisterMiddleware(middleware Middleware)
}

// UnregisteredRequestError is returned by Send when no handler serves the type
type UnregisteredRequestError struct {
	RequestType reflect.Type
}

func (e *UnregisteredRequestError) Error() string {
	return fmt.Sprintf("no handler registered for type %s", e.RequestType)
}
