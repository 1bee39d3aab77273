package pluginhost_test

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/eventloop"
	"github.com/sabouaram/irccd/internal/pluginhost"
)

var _ = Describe("Plugin timers", func() {
	var loop *eventloop.Loop

	BeforeEach(func() {
		loop = eventloop.New()
		go loop.Run()
	})

	AfterEach(func() {
		loop.Stop()
	})

	It("fires a single timer once", func() {
		p := pluginhost.NewPlugin("echo", testLogger())
		var n atomic.Int32

		p.CreateTimer(loop, pluginhost.TimerSingle, 10*time.Millisecond, func() { n.Add(1) })

		Eventually(func() int32 { return n.Load() }, time.Second).Should(Equal(int32(1)))
		Consistently(func() int32 { return n.Load() }, 50*time.Millisecond).Should(Equal(int32(1)))
	})

	It("fires a repeat timer until stopped", func() {
		p := pluginhost.NewPlugin("echo", testLogger())
		var n atomic.Int32

		t := p.CreateTimer(loop, pluginhost.TimerRepeat, 10*time.Millisecond, func() { n.Add(1) })

		Eventually(func() int32 { return n.Load() }, time.Second).Should(BeNumerically(">=", int32(2)))
		t.Stop()

		count := n.Load()
		Consistently(func() int32 { return n.Load() }, 50*time.Millisecond).Should(Equal(count))
	})

	It("cancels every outstanding timer via StopAllTimers", func() {
		p := pluginhost.NewPlugin("echo", testLogger())
		var n atomic.Int32

		p.CreateTimer(loop, pluginhost.TimerRepeat, 10*time.Millisecond, func() { n.Add(1) })
		p.CreateTimer(loop, pluginhost.TimerRepeat, 10*time.Millisecond, func() { n.Add(1) })

		p.StopAllTimers()
		count := n.Load()
		Consistently(func() int32 { return n.Load() }, 50*time.Millisecond).Should(Equal(count))
	})
})
