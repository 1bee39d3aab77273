package ircversion_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/ircversion"
)

var _ = Describe("Version", func() {
	It("renders release, commit and build date", func() {
		v := ircversion.Version{Release: "1.2.3", Commit: "abcdef0", Date: "2026-07-31"}
		Expect(v.String()).To(Equal("irccd 1.2.3 (commit abcdef0, built 2026-07-31)"))
	})

	It("Current reflects the package-level build vars", func() {
		Expect(ircversion.Current().Release).To(Equal(ircversion.Release))
	})
})
