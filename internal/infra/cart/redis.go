package cart

import (
	"context"
	"fmt"

	"storefront-sync/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCart clears carts kept by the storefront under cart:user:<id>.
type RedisCart struct {
	client redis.Cmdable
}

func NewRedisCart(client redis.Cmdable) *RedisCart {
	return &RedisCart{client: client}
}

func Key(userID uuid.UUID) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// Clear is a no-op when the cart does not exist.
func (c *RedisCart) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, Key(userID)).Err(); err != nil {
		return errs.Wrapf(err, "failed to clear cart for user %s", userID)
	}
	return nil
}
