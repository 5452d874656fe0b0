package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "services", []int{1, 2}))

	var got []int
	found, err := c.Get(ctx, "services", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)

	assert.NoError(t, c.DeleteByPrefix(ctx, "services"))
}

func TestKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		params map[string]string
		want   string
	}{
		{name: "no params", prefix: "services", want: "services"},
		{name: "sorted", prefix: "products", params: map[string]string{"featured": "true", "categoryId": "3"}, want: "products:categoryId=3&featured=true"},
		{name: "escaped", prefix: "products", params: map[string]string{"slug": "aceite de rosa"}, want: "products:slug=aceite+de+rosa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.prefix, tt.params))
		})
	}
}

func TestRedis_Namespace(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	c := NewRedis(client, "clinic", time.Minute)
	assert.Equal(t, "clinic:services:tree", c.key("services:tree"))

	bare := NewRedis(client, "", time.Minute)
	assert.Equal(t, "services", bare.key("services"))
}
