//go:build nogl

package opengl

import (
	"fmt"
	"os"

	"github.com/PrincetonUniversity/nissen"
)

// Run returns an error explaining that OpenGL support is disabled.
func Run(t *nissen.Tissue, conf *Config) error {
	return fmt.Errorf("%s was built without OpenGL support", os.Args[0])
}
