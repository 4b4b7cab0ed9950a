package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAndPublish(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer client.Close()

	sub := client.Raw().Subscribe(context.Background(), "portfolio:test")
	defer sub.Close()
	_, err = sub.Receive(context.Background())
	require.NoError(t, err)

	require.NoError(t, client.Publish(context.Background(), "portfolio:test", "hello"))

	msg, err := sub.ReceiveMessage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Payload)
}

func TestConnectErrors(t *testing.T) {
	_, err := Connect("not a url")
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err = Connect("redis://" + addr + "/0")
	assert.Error(t, err)
}
