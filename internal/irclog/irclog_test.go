package irclog_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/irclog"
)

var _ = Describe("Logger", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("writes lines at or above its level", func() {
		l := irclog.New(buf, irclog.WarnLevel)

		l.Info("should be filtered")
		l.Warn("should appear")

		Expect(buf.String()).ToNot(ContainSubstring("should be filtered"))
		Expect(buf.String()).To(ContainSubstring("should appear"))
	})

	It("carries fields into the rendered line", func() {
		l := irclog.New(buf, irclog.DebugLevel).WithFields(irclog.Fields{"server": "freenode"})

		l.Info("connected")

		Expect(buf.String()).To(ContainSubstring("server=freenode"))
		Expect(buf.String()).To(ContainSubstring("connected"))
	})

	It("does not mutate the parent's fields when a child adds its own", func() {
		base := irclog.New(buf, irclog.DebugLevel).WithFields(irclog.Fields{"server": "freenode"})
		child := base.WithFields(irclog.Fields{"channel": "#general"})

		child.Info("joined")
		base.Info("tick")

		Expect(buf.String()).To(ContainSubstring("channel=#general"))
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		Expect(lines).To(HaveLen(2))
		Expect(string(lines[1])).ToNot(ContainSubstring("channel"))
	})

	It("reports the level it was configured with", func() {
		l := irclog.New(buf, irclog.DebugLevel)
		Expect(l.GetLevel()).To(Equal(irclog.DebugLevel))

		l.SetLevel(irclog.ErrorLevel)
		Expect(l.GetLevel()).To(Equal(irclog.ErrorLevel))
	})

	Describe("ParseLevel", func() {
		It("parses known names case-insensitively", func() {
			Expect(irclog.ParseLevel("WARN")).To(Equal(irclog.WarnLevel))
			Expect(irclog.ParseLevel("debug")).To(Equal(irclog.DebugLevel))
		})

		It("falls back to InfoLevel for an unknown name", func() {
			Expect(irclog.ParseLevel("verbose")).To(Equal(irclog.InfoLevel))
		})
	})
})
