package field_test

import (
	"fmt"

	"github.com/cwbudde/algo-heaviside/stats/field"
)

func ExampleVariance() {
	fmt.Printf("%.4f\n", field.Variance([]float64{0, 0.5, 1, 0.5}))

	// Output:
	// 0.1250
}
