package usecase

import "context"

// CacheInvalidator descarta los agregados del dashboard de una tienda.
// Lo implementan cache.RedisDashboardCache y cache.Noop.
type CacheInvalidator interface {
	InvalidateStore(ctx context.Context, storeID string)
}

type noCache struct{}

func (noCache) InvalidateStore(context.Context, string) {}

func orNoCache(c CacheInvalidator) CacheInvalidator {
	if c == nil {
		return noCache{}
	}
	return c
}
