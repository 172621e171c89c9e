package raytrace

import (
	"fmt"
	"io"
	"os"
)

// Print writes the mandatory five-line console report to
// stdout, in order, so every driver emits identical formatting instead
// of duplicating fmt.Printf calls.
func Print(executionSeconds float64, imagePath string, computationSeconds, communicationSeconds, ratio float64) {
	Fprint(os.Stdout, executionSeconds, imagePath, computationSeconds, communicationSeconds, ratio)
}

// Fprint is Print with an explicit destination, for tests.
func Fprint(w io.Writer, executionSeconds float64, imagePath string, computationSeconds, communicationSeconds, ratio float64) {
	fmt.Fprintf(w, "Execution Time: %v seconds\n", executionSeconds)
	fmt.Fprintf(w, "Image will be save to: %s\n", imagePath)
	fmt.Fprintf(w, "Total Computation Time: %v seconds\n", computationSeconds)
	fmt.Fprintf(w, "Total Communication Time: %v seconds\n", communicationSeconds)
	fmt.Fprintf(w, "C-to-C Ratio: %v\n", ratio)
}
