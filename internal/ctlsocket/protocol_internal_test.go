package ctlsocket

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("protocol helpers", func() {
	It("splits a verb from its remaining args", func() {
		verb, rest := splitVerb("SERVER-JOIN libera #chan\n")
		Expect(verb).To(Equal("SERVER-JOIN"))
		Expect(rest).To(Equal("libera #chan"))
	})

	It("splits a bare verb with no args", func() {
		verb, rest := splitVerb("WATCH")
		Expect(verb).To(Equal("WATCH"))
		Expect(rest).To(Equal(""))
	})

	It("keeps embedded spaces in the last field", func() {
		args := splitArgs("libera #chan hello there friend", 3)
		Expect(args).To(Equal([]string{"libera", "#chan", "hello there friend"}))
	})

	It("escapes and unescapes embedded newlines and backslashes", func() {
		escaped := escapeField("line1\nline2\\done")
		Expect(escaped).To(Equal("line1\\nline2\\\\done"))
		Expect(unescapeField(escaped)).To(Equal("line1\nline2\\done"))
	})

	It("joins fields into one escaped space-separated line", func() {
		Expect(joinFields("JOIN", "libera", "#chan")).To(Equal("JOIN libera #chan"))
	})
})
