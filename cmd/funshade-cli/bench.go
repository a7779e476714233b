package main

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/luxfi/funshade/pkg/dealer"
	"github.com/luxfi/funshade/pkg/ring"
)

func runBench(cmd *cobra.Command, args []string) error {
	switch widthFlag {
	case 32:
		return benchWidth[ring.Elem32](ring.Elem32(thetaFlag))
	case 64:
		return benchWidth[ring.Elem64](ring.Elem64(thetaFlag))
	default:
		return fmt.Errorf("funshade-cli: unsupported width %d (want 32 or 64)", widthFlag)
	}
}

func benchWidth[T ring.Elem](theta T) error {
	start := time.Now()
	p0, _, err := dealer.Setup[T](kInstances, lDim, theta, rand.Reader)
	if err != nil {
		return fmt.Errorf("funshade-cli: bench: %w", err)
	}
	setupElapsed := time.Since(start)

	perInstance := setupElapsed / time.Duration(kInstances)
	fmt.Printf("dealer setup: K=%d l=%d width=%d took %s (%s/instance)\n",
		kInstances, lDim, widthFlag, setupElapsed, perInstance)
	fmt.Printf("%d Beaver triples generated\n", len(p0.Instances)*lDim)
	return nil
}
