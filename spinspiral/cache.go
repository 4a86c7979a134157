package spinspiral

import (
	"image"
	"strconv"

	"github.com/benoitkugler/spinart/spincolor"
	"github.com/benoitkugler/spinart/spinlog"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of thumbnails kept by NewCache
// when given a non positive size.
const DefaultCacheSize = 64

type cacheKey struct {
	title string
	scale float64
}

// Cache keeps the most recently used thumbnails, keyed by
// generator title and device scale. All thumbnails share the
// geometry of the base model given to NewCache.
// It is safe for concurrent use.
type Cache struct {
	base  Model
	mode  ErrorMode
	items *lru.Cache[cacheKey, *image.RGBA]
	group singleflight.Group // one rendering per key at a time
}

// NewCache returns an empty cache holding at most `size` images.
func NewCache(base Model, size int, mode ErrorMode) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	items, err := lru.New[cacheKey, *image.RGBA](size)
	if err != nil {
		return nil, err
	}
	return &Cache{base: base, mode: mode, items: items}, nil
}

// Thumbnail returns the rendering of the base model with generator `g`.
// The returned image is shared and must not be modified.
func (c *Cache) Thumbnail(g spincolor.Generator, scale float64) (*image.RGBA, error) {
	key := cacheKey{title: g.Title, scale: scale}
	if img, ok := c.items.Get(key); ok {
		spinlog.Logger().Debug("spinspiral: thumbnail cache hit", "generator", g.Title, "scale", scale)
		return img, nil
	}
	spinlog.Logger().Debug("spinspiral: thumbnail cache miss", "generator", g.Title, "scale", scale)

	v, err, _ := c.group.Do(g.Title+"@"+strconv.FormatFloat(scale, 'g', -1, 64), func() (interface{}, error) {
		m := c.base
		m.Generator = g
		img, err := RenderImage(m, scale, c.mode)
		if err != nil {
			return nil, err
		}
		c.items.Add(key, img)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*image.RGBA), nil
}

// Len returns the number of cached thumbnails.
func (c *Cache) Len() int { return c.items.Len() }

// Purge drops all the cached thumbnails.
func (c *Cache) Purge() { c.items.Purge() }
