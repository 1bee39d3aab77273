package ctlsocket

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/rulechain"
)

var _ = Describe("parseRuleAdd", func() {
	It("parses action and multiple same-key values", func() {
		rule, index, err := parseRuleAdd("drop c=#spam c=#flood s=libera i=2")
		Expect(err).To(BeNil())
		Expect(rule.Action).To(Equal(rulechain.Drop))
		Expect(rule.Channels).To(ConsistOf("#spam", "#flood"))
		Expect(rule.Servers).To(ConsistOf("libera"))
		Expect(index).To(Equal(2))
	})

	It("defaults index to -1 (append) when absent", func() {
		_, index, err := parseRuleAdd("accept")
		Expect(err).To(BeNil())
		Expect(index).To(Equal(-1))
	})

	It("rejects an invalid action", func() {
		_, _, err := parseRuleAdd("maybe")
		Expect(err).NotTo(BeNil())
	})

	It("rejects an unknown set key", func() {
		_, _, err := parseRuleAdd("accept z=foo")
		Expect(err).NotTo(BeNil())
	})
})

var _ = Describe("parseRuleEdit", func() {
	It("parses an action token", func() {
		edit, err := parseRuleEdit("a=drop")
		Expect(err).To(BeNil())
		Expect(edit.Action).NotTo(BeNil())
		Expect(*edit.Action).To(Equal(rulechain.Drop))
	})

	It("parses add and remove set ops", func() {
		edit, err := parseRuleEdit("c+#new c-#old")
		Expect(err).To(BeNil())
		Expect(edit.SetOps).To(ConsistOf(
			rulechain.SetOp{Key: 'c', Add: true, Value: "#new"},
			rulechain.SetOp{Key: 'c', Add: false, Value: "#old"},
		))
	})

	It("rejects a malformed token", func() {
		_, err := parseRuleEdit("c")
		Expect(err).NotTo(BeNil())
	})
})

var _ = Describe("formatRuleList", func() {
	It("renders the count header and six fields per rule", func() {
		out := formatRuleList([]rulechain.Rule{
			{Action: rulechain.Accept, Channels: []string{"#a", "#b"}},
		})
		Expect(out).To(Equal("OK 1\naccept\n\n#a #b\n\n\n"))
	})
})
