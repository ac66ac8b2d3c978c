package catalog_test

import (
	"fmt"

	"github.com/matzehuels/idphoto/pkg/catalog"
)

func ExampleCatalog_Photo() {
	c := catalog.Builtin()

	fmt.Println(c.Photo("us_visa").Size)
	fmt.Println(c.Photo("does-not-exist").ID)
	// Output:
	// 5.1x5.1 cm
	// 1inch
}

func ExampleCatalog_LookupPaper() {
	c := catalog.Builtin()

	if _, ok := c.LookupPaper("tabloid"); !ok {
		paper := c.Paper("tabloid")
		fmt.Printf("unknown paper, using %s (%s)\n", paper.ID, paper.DisplayName())
	}
	// Output:
	// unknown paper, using 6inch (6-inch-4R)
}

func ExampleCatalog_Merge() {
	c := catalog.Builtin().Merge(
		[]catalog.PhotoSpec{{ID: "in_passport", Size: catalog.Dimension{Width: 3.5, Height: 4.5}}},
		nil,
	)
	fmt.Println(c.Photo("in_passport").Size)
	// Output:
	// 3.5x4.5 cm
}
