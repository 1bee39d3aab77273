package rulechain_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/rulechain"
)

var _ = Describe("Evaluate", func() {
	DescribeTable("matching",
		func(rules []rulechain.Rule, ev rulechain.MatchEvent, pluginID string, want rulechain.Action) {
			Expect(rulechain.Evaluate(rules, ev, pluginID)).To(Equal(want))
		},
		Entry("no rules defaults to Accept", nil,
			rulechain.MatchEvent{ServerID: "s1"}, "", rulechain.Accept),
		Entry("all-wildcard rule matches everything",
			[]rulechain.Rule{{Action: rulechain.Drop}},
			rulechain.MatchEvent{ServerID: "s1", Channel: "#chan"}, "",
			rulechain.Drop),
		Entry("non-matching server set leaves default Accept",
			[]rulechain.Rule{{Action: rulechain.Drop, Servers: []string{"other"}}},
			rulechain.MatchEvent{ServerID: "s1"}, "",
			rulechain.Accept),
		Entry("last matching rule wins",
			[]rulechain.Rule{
				{Action: rulechain.Drop},
				{Action: rulechain.Accept, Channels: []string{"#chan"}},
			},
			rulechain.MatchEvent{ServerID: "s1", Channel: "#chan"}, "",
			rulechain.Accept),
		Entry("origin matching strips user/host",
			[]rulechain.Rule{{Action: rulechain.Drop, Origins: []string{"alice"}}},
			rulechain.MatchEvent{Origin: "alice!ident@host"}, "",
			rulechain.Drop),
		Entry("plugin set only matches the named plugin",
			[]rulechain.Rule{{Action: rulechain.Drop, Plugins: []string{"echo"}}},
			rulechain.MatchEvent{ServerID: "s1"}, "other",
			rulechain.Accept),
	)
})

var _ = Describe("Chain", func() {
	It("appends when Add's index is negative", func() {
		c := rulechain.NewChain(nil)
		Expect(c.Add(rulechain.Rule{Action: rulechain.Drop}, -1)).To(Succeed())
		Expect(c.Len()).To(Equal(1))
	})

	It("inserts at an explicit index, preserving order", func() {
		c := rulechain.NewChain([]rulechain.Rule{
			{Action: rulechain.Accept},
			{Action: rulechain.Drop},
		})
		Expect(c.Add(rulechain.Rule{Action: rulechain.Drop, Channels: []string{"#mid"}}, 1)).To(Succeed())

		rules := c.Rules()
		Expect(rules).To(HaveLen(3))
		Expect(rules[1].Channels).To(ConsistOf("#mid"))
	})

	It("moves a rule to a new position", func() {
		c := rulechain.NewChain([]rulechain.Rule{
			{Channels: []string{"a"}},
			{Channels: []string{"b"}},
			{Channels: []string{"c"}},
		})
		Expect(c.Move(0, 2)).To(Succeed())

		rules := c.Rules()
		Expect(rules[0].Channels).To(ConsistOf("b"))
		Expect(rules[2].Channels).To(ConsistOf("a"))
	})

	It("removes a rule by index", func() {
		c := rulechain.NewChain([]rulechain.Rule{{Channels: []string{"a"}}, {Channels: []string{"b"}}})
		Expect(c.Remove(0)).To(Succeed())
		Expect(c.Rules()).To(ConsistOf(rulechain.Rule{Channels: []string{"b"}}))
	})

	It("fails out-of-range index operations", func() {
		c := rulechain.NewChain(nil)
		Expect(c.Remove(0)).NotTo(Succeed())
		Expect(c.Move(0, 0)).NotTo(Succeed())
	})

	It("edits action and set membership via +/- tokens", func() {
		c := rulechain.NewChain([]rulechain.Rule{{Action: rulechain.Accept, Channels: []string{"#old"}}})
		drop := rulechain.Drop

		err := c.Edit(0, rulechain.Edit{
			Action: &drop,
			SetOps: []rulechain.SetOp{
				{Key: 'c', Add: true, Value: "#new"},
				{Key: 'c', Add: false, Value: "#old"},
			},
		})
		Expect(err).To(BeNil())

		rules := c.Rules()
		Expect(rules[0].Action).To(Equal(rulechain.Drop))
		Expect(rules[0].Channels).To(ConsistOf("#new"))
	})

	It("ignores adding a value already present", func() {
		c := rulechain.NewChain([]rulechain.Rule{{Servers: []string{"s1"}}})
		err := c.Edit(0, rulechain.Edit{SetOps: []rulechain.SetOp{{Key: 's', Add: true, Value: "s1"}}})
		Expect(err).To(BeNil())
		Expect(c.Rules()[0].Servers).To(ConsistOf("s1"))
	})
})
