// Package render composites a photo onto a print sheet.
//
// # Overview
//
// Rendering takes a decoded photo and a [layout.Plan] and produces a
// [Sheet]: an RGBA surface at print resolution plus its PNG encoding. The
// package has two layers:
//
//   - [Draw] is the synchronous drawing pass. It never blocks on I/O.
//   - [Renderer] accepts requests asynchronously, decodes sources on their
//     own goroutine and publishes only the newest request's result.
//
// # Drawing
//
// Coordinates in a plan are reference units: print pixels at 300 DPI before
// the print scale factor. [Draw] allocates a surface of
// floor(container × scale) pixels, fills it with the background colour,
// crops the photo to the tile aspect ratio and stamps one resized copy per
// tile with a thin grey cut border:
//
//	img, err := render.Draw(photo, plan, color.White,
//	    render.WithScale(render.PrintScale),
//	    render.WithCrop(render.CropSmart),
//	)
//
// The default crop takes the largest centred region with the tile's aspect
// ratio. [CropSmart] lets muesli/smartcrop pick the region instead.
//
// # Staleness
//
// Each [Renderer.Submit] is tagged with a sequence number. A completion whose
// sequence is older than the newest submitted request is reported as stale
// and never replaces [Renderer.Latest], so a slow decode can not overwrite
// the result of a later, faster one.
//
// # Sources
//
// A [Source] yields a decoded image. [FileSource] reads from disk and applies
// the EXIF orientation, [BytesSource] decodes an in-memory upload and
// [ImageSource] wraps an image that is already decoded. JPEG, PNG, GIF, BMP,
// TIFF and WebP are recognised.
package render
