package mediator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingQuery struct{ value string }

type pongResponse struct{ value string }

func TestMediator_SendThroughMiddleware(t *testing.T) {
	// Arrange
	m := NewMediator()
	var order []string
	require.NoError(t, RegisterHandler[*pingQuery](m, HandlerFunc(func(ctx context.Context, r Request) (Response, error) {
		order = append(order, "handler")
		return &pongResponse{value: r.(*pingQuery).value}, nil
	})))
	for _, name := range []string{"outer", "inner"} {
		name := name
		m.Use(func(ctx context.Context, r Request, next HandlerFunc) (Response, error) {
			order = append(order, name)
			return next(ctx, r)
		})
	}

	// Act
	resp, err := SendTyped[*pongResponse](context.Background(), m, &pingQuery{value: "x"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "x", resp.value)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestMediator_Errors(t *testing.T) {
	// Arrange
	m := NewMediator()
	boom := errors.New("boom")
	require.NoError(t, RegisterHandler[*pingQuery](m, HandlerFunc(func(ctx context.Context, r Request) (Response, error) {
		return nil, boom
	})))

	// Act
	_, errUnregistered := m.Send(context.Background(), &pongResponse{})
	_, errNil := m.Send(context.Background(), nil)
	_, errHandler := m.Send(context.Background(), &pingQuery{})
	errDuplicate := RegisterHandler[*pingQuery](m, HandlerFunc(nil))

	// Assert
	assert.Error(t, errUnregistered)
	assert.Error(t, errNil)
	assert.ErrorIs(t, errHandler, boom)
	assert.Error(t, errDuplicate)
}
