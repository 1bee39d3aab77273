package dispatcher

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("splitCommand", func() {
	DescribeTable("matching",
		func(prefix, text, wantID, wantRest string, wantOK bool) {
			id, rest, ok := splitCommand(prefix, text)
			Expect(ok).To(Equal(wantOK))
			if wantOK {
				Expect(id).To(Equal(wantID))
				Expect(rest).To(Equal(wantRest))
			}
		},
		Entry("prefix with id and rest", "!", "!echo hello world", "echo", "hello world", true),
		Entry("prefix with id and no rest", "!", "!echo", "echo", "", true),
		Entry("no prefix configured", "", "!echo hello", "", "", false),
		Entry("text missing the prefix", "!", "echo hello", "", "", false),
		Entry("bare prefix with nothing after it", "!", "!", "", "", false),
		Entry("multi-character prefix", "bot:", "bot:echo hi", "echo", "hi", true),
	)
})
