package linecodec_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/linecodec"
)

var _ = Describe("Queue", func() {
	It("drains in strict FIFO order", func() {
		q := linecodec.NewQueue(100)
		q.Push("one")
		q.Push("two")
		q.Push("three")

		l1, _ := q.Pop()
		l2, _ := q.Pop()
		l3, _ := q.Pop()

		Expect([]string{l1, l2, l3}).To(Equal([]string{"one", "two", "three"}))
	})

	It("enforces the steady-state rate limit", func() {
		q := linecodec.NewQueueWindow(2, 50*time.Millisecond)
		q.Push("a")
		q.Push("b")
		q.Push("c")

		_, ok1 := q.Pop()
		_, ok2 := q.Pop()
		_, ok3 := q.Pop()

		Expect(ok1).To(BeTrue())
		Expect(ok2).To(BeTrue())
		Expect(ok3).To(BeFalse())
		Expect(q.Len()).To(Equal(1))
	})

	It("allows sends again once the window slides past", func() {
		q := linecodec.NewQueueWindow(1, 20*time.Millisecond)
		q.Push("a")
		q.Push("b")

		_, ok1 := q.Pop()
		_, ok2 := q.Pop()
		Expect(ok1).To(BeTrue())
		Expect(ok2).To(BeFalse())

		time.Sleep(30 * time.Millisecond)

		_, ok3 := q.Pop()
		Expect(ok3).To(BeTrue())
	})

	It("PushFront bypasses both FIFO order and the rate limit", func() {
		q := linecodec.NewQueueWindow(1, time.Second)
		q.Push("privmsg")
		_, _ = q.Pop() // exhaust the rate-limit budget

		q.PushFront("PONG :server")
		line, ok := q.PopBypass()
		Expect(ok).To(BeTrue())
		Expect(line).To(Equal("PONG :server"))
	})
})
