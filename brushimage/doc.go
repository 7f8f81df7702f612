// Package brushimage loads brush tips for the brush engine.
//
// It decodes PNG, JPEG, GIF, BMP, TIFF and WebP images as well as GIMP
// brushes (.gbr) and image pipes (.gih), and normalizes every tip to a square
// premultiplied *image.RGBA. Opaque grayscale images are read as ink on paper:
// dark pixels become coverage and white becomes transparent.
//
// Importer decodes batches of files on a worker pool and commits them to a
// Collection, which serves tips to a brush.Session:
//
//	coll := brushimage.NewCollection()
//	imp := &brushimage.Importer{Collection: coll}
//	res, err := imp.Import(ctx, paths, nil)
//	...
//	s, err := brush.NewSession(img, brush.WithBrushSource(coll))
package brushimage
