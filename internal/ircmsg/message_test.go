package ircmsg_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/ircmsg"
)

var _ = Describe("Parse", func() {
	DescribeTable("well-formed lines",
		func(line string, wantCmd string, wantParams []string, wantTrail string, wantHasTrail bool) {
			m := ircmsg.Parse(line)
			Expect(m.Command).To(Equal(wantCmd))
			Expect(m.Params).To(Equal(wantParams))
			Expect(m.Trailing).To(Equal(wantTrail))
			Expect(m.HasTrail).To(Equal(wantHasTrail))
		},
		Entry("PRIVMSG with trailing", ":nick!user@host PRIVMSG #chan :hello world",
			"PRIVMSG", []string{"#chan"}, "hello world", true),
		Entry("PING with a single param", "PING :tungsten.libera.chat",
			"PING", []string(nil), "tungsten.libera.chat", true),
		Entry("numeric reply with middle params", ":server 353 irccd = #chan :nick1 nick2",
			"353", []string{"irccd", "=", "#chan"}, "nick1 nick2", true),
		Entry("no prefix, no trailing", "NICK newnick",
			"NICK", []string{"newnick"}, "", false),
	)

	It("parses the prefix into nick/user/host", func() {
		m := ircmsg.Parse(":dean!~dean@example.com JOIN #general")
		Expect(m.Prefix.Nick).To(Equal("dean"))
		Expect(m.Prefix.User).To(Equal("~dean"))
		Expect(m.Prefix.Host).To(Equal("example.com"))
	})

	It("parses a bare server-name prefix", func() {
		m := ircmsg.Parse(":irc.example.net 001 irccd :Welcome")
		Expect(m.Prefix.Nick).To(Equal("irc.example.net"))
		Expect(m.Prefix.Host).To(Equal(""))
	})

	It("round-trips through String", func() {
		line := ":nick!user@host PRIVMSG #chan :hello world"
		Expect(ircmsg.Parse(line).String()).To(Equal(line))
	})

	It("returns a zero Message for an empty line", func() {
		m := ircmsg.Parse("")
		Expect(m.Command).To(Equal(""))
	})
})

var _ = Describe("CTCP", func() {
	It("detects a quoted VERSION request", func() {
		kw, body, ok := ircmsg.IsCTCP("\x01VERSION\x01")
		Expect(ok).To(BeTrue())
		Expect(kw).To(Equal("VERSION"))
		Expect(body).To(Equal(""))
	})

	It("detects an ACTION with a body", func() {
		body, ok := ircmsg.IsAction("\x01ACTION waves\x01")
		Expect(ok).To(BeTrue())
		Expect(body).To(Equal("waves"))
	})

	It("rejects a plain, unquoted trailing", func() {
		_, _, ok := ircmsg.IsCTCP("hello world")
		Expect(ok).To(BeFalse())
	})

	It("QuoteCTCP produces a string IsCTCP recognizes", func() {
		quoted := ircmsg.QuoteCTCP("SOURCE", "https://example.com")
		kw, body, ok := ircmsg.IsCTCP(quoted)
		Expect(ok).To(BeTrue())
		Expect(kw).To(Equal("SOURCE"))
		Expect(body).To(Equal("https://example.com"))
	})
})
