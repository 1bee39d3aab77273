package pluginhost_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/pluginhost"
)

type fakeOpener struct {
	name   string
	claims func(path string) bool
}

func (f fakeOpener) Name() string { return f.name }

func (f fakeOpener) Open(_ context.Context, id, path string) (*pluginhost.Plugin, error) {
	if !f.claims(path) {
		return nil, errors.New("not claimed")
	}
	return pluginhost.NewPlugin(id, testLogger()), nil
}

var _ = Describe("Host", func() {
	var h *pluginhost.Host

	BeforeEach(func() {
		h = pluginhost.NewHost(testLogger())
	})

	It("loads a plugin via the first opener that claims its path", func() {
		h.RegisterOpener(fakeOpener{name: "native", claims: func(p string) bool { return p == "/plugins/echo.so" }})

		p, err := h.Load(context.Background(), "echo", "/plugins/echo.so")
		Expect(err).To(BeNil())
		Expect(p.ID()).To(Equal("echo"))
		Expect(h.List()).To(ConsistOf("echo"))
	})

	It("fails when no opener claims the path", func() {
		h.RegisterOpener(fakeOpener{name: "native", claims: func(string) bool { return false }})

		_, err := h.Load(context.Background(), "echo", "/plugins/echo.so")
		Expect(err).NotTo(BeNil())
	})

	It("rejects loading an id that is already loaded", func() {
		h.RegisterOpener(fakeOpener{name: "native", claims: func(string) bool { return true }})
		_, err := h.Load(context.Background(), "echo", "/plugins/echo.so")
		Expect(err).To(BeNil())

		_, err = h.Load(context.Background(), "echo", "/plugins/echo.so")
		Expect(err).NotTo(BeNil())
	})

	It("unloads in order: timers, onUnload, release", func() {
		h.RegisterOpener(fakeOpener{name: "native", claims: func(string) bool { return true }})
		p, err := h.Load(context.Background(), "echo", "/plugins/echo.so")
		Expect(err).To(BeNil())

		unloaded := false
		p.OnUnload(func() { unloaded = true })

		Expect(h.Unload("echo")).To(Succeed())
		Expect(unloaded).To(BeTrue())
		Expect(h.List()).To(BeEmpty())
	})

	It("fails to unload a plugin that is not loaded", func() {
		Expect(h.Unload("nope")).NotTo(Succeed())
	})

	It("reloads a plugin by unloading then loading again", func() {
		h.RegisterOpener(fakeOpener{name: "native", claims: func(string) bool { return true }})
		first, err := h.Load(context.Background(), "echo", "/plugins/echo.so")
		Expect(err).To(BeNil())

		second, err := h.Reload(context.Background(), "echo", "/plugins/echo.so")
		Expect(err).To(BeNil())
		Expect(second).NotTo(BeIdenticalTo(first))
	})

	It("broadcasts to every loaded plugin", func() {
		h.RegisterOpener(fakeOpener{name: "native", claims: func(string) bool { return true }})
		_, _ = h.Load(context.Background(), "a", "/a.so")
		_, _ = h.Load(context.Background(), "b", "/b.so")

		seen := map[string]bool{}
		h.Broadcast(func(p *pluginhost.Plugin) { seen[p.ID()] = true })

		Expect(seen).To(HaveKey("a"))
		Expect(seen).To(HaveKey("b"))
	})
})
