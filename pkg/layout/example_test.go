package layout_test

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/forest"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/person"
)

func ExampleCompute() {
	father := "obi"
	people := person.Normalize([]person.Record{
		{ID: "obi", FirstName: "Obi", Gender: "MALE"},
		{ID: "ada", FirstName: "Ada", Gender: "FEMALE", SpouseID: &father},
		{ID: "eze", FirstName: "Eze", Gender: "MALE", FatherID: &father},
	})

	l, err := layout.Compute(forest.Build(people), layout.Vertical, layout.DefaultOptions())
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, n := range l.Nodes() {
		fmt.Printf("%s at (%.0f, %.0f) extent %.0f\n", n.Unit.Label(), n.X, n.Y, n.Extent)
	}
	fmt.Printf("bounds %.0fx%.0f\n", l.Bounds.Width(), l.Bounds.Height())
	// Output:
	// Obi & Ada at (160, 0) extent 320
	// Eze at (160, 150) extent 150
	// bounds 320x210
}
