package eventloop_test

import (
	"os"
	"sync"
	"syscall"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/eventloop"
)

var _ = Describe("Loop", func() {
	var l *eventloop.Loop

	BeforeEach(func() {
		l = eventloop.New()
		go l.Run()
	})

	AfterEach(func() {
		l.Stop()
	})

	It("runs posted tasks in order on the loop goroutine", func() {
		var mu sync.Mutex
		var order []int

		var wg sync.WaitGroup
		wg.Add(3)
		for i := 1; i <= 3; i++ {
			i := i
			l.PostFunc(func() {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				wg.Done()
			})
		}
		wg.Wait()

		mu.Lock()
		defer mu.Unlock()
		Expect(order).To(Equal([]int{1, 2, 3}))
	})

	It("fires a one-shot AfterFunc timer", func() {
		done := make(chan struct{})
		l.AfterFunc(10*time.Millisecond, func() {
			close(done)
		})

		Eventually(done, time.Second).Should(BeClosed())
	})

	It("cancels a one-shot timer before it fires", func() {
		fired := make(chan struct{})
		timer := l.AfterFunc(50*time.Millisecond, func() {
			close(fired)
		})
		timer.Stop()

		Consistently(fired, 100*time.Millisecond).ShouldNot(BeClosed())
	})

	It("fires a periodic TickFunc repeatedly until stopped", func() {
		count := make(chan struct{}, 16)
		timer := l.TickFunc(10*time.Millisecond, func() {
			select {
			case count <- struct{}{}:
			default:
			}
		})

		Eventually(count, time.Second).Should(Receive())
		Eventually(count, time.Second).Should(Receive())
		timer.Stop()
	})

	It("invokes the signal handler on SIGINT", func() {
		got := make(chan os.Signal, 1)
		l.HandleSignals(func(sig os.Signal) {
			got <- sig
		})

		proc, err := os.FindProcess(os.Getpid())
		Expect(err).To(BeNil())
		Expect(proc.Signal(syscall.SIGINT)).To(Succeed())

		Eventually(got, time.Second).Should(Receive(Equal(syscall.SIGINT)))
	})

	It("stops accepting new tasks after Stop", func() {
		l.Stop()
		ran := make(chan struct{})
		l.PostFunc(func() { close(ran) })
		Consistently(ran, 50*time.Millisecond).ShouldNot(BeClosed())
	})
})
