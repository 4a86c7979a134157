package spinspiral

import (
	"context"
	"errors"
	"image"
	"image/draw"

	"github.com/benoitkugler/spinart/spincolor"
	"github.com/remeh/sizedwaitgroup"
	xdraw "golang.org/x/image/draw"
)

// RenderPalette renders the thumbnails of `gens`, at most `parallel`
// at a time, and returns them in the same order.
// No new rendering is started once `ctx` is done.
func RenderPalette(ctx context.Context, cache *Cache, gens []spincolor.Generator, scale float64, parallel int) ([]*image.RGBA, error) {
	if parallel <= 0 {
		parallel = 1
	}
	images := make([]*image.RGBA, len(gens))
	errs := make([]error, len(gens))

	swg := sizedwaitgroup.New(parallel)
	for i, g := range gens {
		if err := swg.AddWithContext(ctx); err != nil {
			break
		}
		go func(i int, g spincolor.Generator) {
			defer swg.Done()
			images[i], errs[i] = cache.Thumbnail(g, scale)
		}(i, g)
	}
	swg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return images, nil
}

// Sheet lays out `images` on a grid of `columns` columns, each image
// being scaled to fit a `cell` x `cell` square.
func Sheet(images []*image.RGBA, columns, cell int) *image.RGBA {
	if columns <= 0 {
		columns = 1
	}
	rows := (len(images) + columns - 1) / columns
	out := image.NewRGBA(image.Rect(0, 0, columns*cell, rows*cell))
	draw.Draw(out, out.Bounds(), image.Transparent, image.Point{}, draw.Src)
	for i, img := range images {
		x, y := (i%columns)*cell, (i/columns)*cell
		dst := fitRect(img.Bounds().Size(), cell).Add(image.Pt(x, y))
		xdraw.CatmullRom.Scale(out, dst, img, img.Bounds(), xdraw.Over, nil)
	}
	return out
}

// fitRect returns the rectangle of a centered, aspect preserving
// fit of `size` in a `cell` square
func fitRect(size image.Point, cell int) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{}
	}
	w, h := cell, cell
	if size.X > size.Y {
		h = cell * size.Y / size.X
	} else if size.Y > size.X {
		w = cell * size.X / size.Y
	}
	x0, y0 := (cell-w)/2, (cell-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}
