package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect_RequiresAddress(t *testing.T) {
	_, err := Connect(context.Background(), " ")
	require.ErrorContains(t, err, "empty")
}

func TestConnect_UnreachableServer(t *testing.T) {
	_, err := Connect(context.Background(), "127.0.0.1:1")
	require.ErrorContains(t, err, "ping redis 127.0.0.1:1")
}
