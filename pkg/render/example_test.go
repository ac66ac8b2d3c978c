package render_test

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/matzehuels/idphoto/pkg/catalog"
	"github.com/matzehuels/idphoto/pkg/layout"
	"github.com/matzehuels/idphoto/pkg/render"
)

func ExampleDraw() {
	c := catalog.Builtin()
	plan := layout.Compute(c.Photo("1inch").Size, c.Paper("6inch").Size, layout.Auto)

	photo := image.NewRGBA(image.Rect(0, 0, 600, 800))
	bg, _ := render.ParseColor("blue")

	img, err := render.Draw(photo, plan, bg, render.WithScale(0.1))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(img.Bounds().Size())
	// Output:
	// (120,179)
}

func ExampleCropRect() {
	// A 4:3 landscape photo cropped for a 1-inch portrait tile.
	fmt.Println(render.CropRect(4000, 3000, 295, 413))
	// Output:
	// (929,0)-(3072,3000)
}

func ExampleRenderer() {
	r := render.NewRenderer(render.WithScale(0.1))
	plan := layout.Compute(
		catalog.Dimension{Width: 2.5, Height: 3.5},
		catalog.Dimension{Width: 15.2, Height: 10.2},
		layout.Auto,
	)
	src := render.ImageSource{Image: image.NewRGBA(image.Rect(0, 0, 60, 80))}

	done := r.Submit(context.Background(), src, plan, color.White)
	c := <-done
	fmt.Println(c.Seq, c.Stale, c.Err, c.Sheet.Bounds().Size())
	// Output:
	// 1 false <nil> (120,179)
}
