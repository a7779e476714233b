package funshade_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFunshadeSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Funshade Distance-Threshold Protocol Suite")
}
