package pluginhost_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/pluginhost"
	"github.com/sabouaram/irccd/internal/serverfsm"
)

func testLogger() irclog.Logger {
	return irclog.New(&bytes.Buffer{}, irclog.DebugLevel)
}

var _ = Describe("Plugin", func() {
	It("dispatches to the registered callback for a kind", func() {
		p := pluginhost.NewPlugin("echo", testLogger())

		var got serverfsm.Event
		p.OnEvent(serverfsm.EventMessage, func(ev serverfsm.Event) { got = ev })

		p.Dispatch(serverfsm.Event{Kind: serverfsm.EventMessage, Text: "hi"})
		Expect(got.Text).To(Equal("hi"))
	})

	It("ignores events with no registered callback", func() {
		p := pluginhost.NewPlugin("echo", testLogger())
		Expect(func() { p.Dispatch(serverfsm.Event{Kind: serverfsm.EventJoin}) }).NotTo(Panic())
	})

	It("recovers a panicking callback", func() {
		p := pluginhost.NewPlugin("echo", testLogger())
		p.OnEvent(serverfsm.EventMessage, func(serverfsm.Event) { panic("boom") })

		Expect(func() { p.Dispatch(serverfsm.Event{Kind: serverfsm.EventMessage}) }).NotTo(Panic())
	})

	It("round-trips metadata", func() {
		p := pluginhost.NewPlugin("echo", testLogger())
		p.SetMetadata(pluginhost.Metadata{Author: "a", Version: "1.0"})

		Expect(p.Metadata().Author).To(Equal("a"))
		Expect(p.Metadata().Version).To(Equal("1.0"))
	})

	It("gets/sets/lists its options map", func() {
		p := pluginhost.NewPlugin("echo", testLogger())
		p.Options().Set("greeting", "hello")

		v, ok := p.Options().Get("greeting")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("hello"))
		Expect(p.Options().List()).To(HaveKeyWithValue("greeting", "hello"))
	})
})
