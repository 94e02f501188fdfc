package cli

import (
	"os"
	"testing"

	"github.com/fatih/color"
)

// Output assertions match plain text.
func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}
