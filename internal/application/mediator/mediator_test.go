package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/application/mediator"
)

type pingQuery struct{ Value string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query := request.(*pingQuery)
	if query.Value == "" {
		return nil, errors.New("empty ping")
	}
	return "pong:" + query.Value, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	// Act
	response, err := m.Send(context.Background(), &pingQuery{Value: "a"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong:a", response)
}

func TestMediator_RejectsUnknownAndDuplicateRegistrations(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), &pingQuery{})
	assert.ErrorContains(t, err, "no handler registered")
	var unregistered *mediator.UnregisteredRequestError
	require.True(t, errors.As(err, &unregistered))
	assert.Equal(t, "*mediator_test.pingQuery", unregistered.RequestType.String())

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)

	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))
	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))
	assert.Error(t, m.Register(nil, pingHandler{}))
}

func TestMediator_AcceptsHandlerFunc(t *testing.T) {
	m := mediator.NewMediator()
	echo := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return request.(*pingQuery).Value, nil
	})
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, echo))

	response, err := m.Send(context.Background(), &pingQuery{Value: "colony"})

	require.NoError(t, err)
	assert.Equal(t, "colony", response)
}

func TestMediator_MiddlewareRunsInRegistrationOrder(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	var calls []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			calls = append(calls, name+":before")
			response, err := next(ctx, request)
			calls = append(calls, name+":after")
			return response, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	_, err := m.Send(context.Background(), &pingQuery{Value: "b"})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

func TestMediator_MiddlewareSeesHandlerErrors(t *testing.T) {
	m := mediator.NewMediator()
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, pingHandler{}))

	var seen error
	m.RegisterMiddleware(func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		response, err := next(ctx, request)
		seen = err
		return response, err
	})

	_, err := m.Send(context.Background(), &pingQuery{})

	assert.Error(t, err)
	assert.Equal(t, err, seen)
}
