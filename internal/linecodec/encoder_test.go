package linecodec_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/linecodec"
)

// failWriter errors on every write, simulating a broken transport.
type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

var _ = Describe("Encoder", func() {
	It("drains the queue, writing CRLF-terminated lines", func() {
		buf := &bytes.Buffer{}
		e := linecodec.NewEncoder(buf)
		q := linecodec.NewQueue(100)
		q.Push("NICK bob")
		q.Push("USER bob 0 * :Bob")

		sent, err := e.Drain(q)
		Expect(err).To(BeNil())
		Expect(sent).To(Equal(2))
		Expect(buf.String()).To(Equal("NICK bob\r\nUSER bob 0 * :Bob\r\n"))
	})

	It("DrainBypass sends exactly one line regardless of the rate limit", func() {
		buf := &bytes.Buffer{}
		e := linecodec.NewEncoder(buf)
		q := linecodec.NewQueueWindow(1, 1000)
		q.PushFront("PONG :server")
		q.Push("PRIVMSG #chan :hi")

		sent, err := e.DrainBypass(q)
		Expect(err).To(BeNil())
		Expect(sent).To(BeTrue())
		Expect(buf.String()).To(Equal("PONG :server\r\n"))
		Expect(q.Len()).To(Equal(1))
	})

	It("pushes a line back to the front of the queue when the write fails", func() {
		e := linecodec.NewEncoder(failWriter{})
		q := linecodec.NewQueue(100)
		q.Push("NICK bob")
		q.Push("USER bob 0 * :Bob")

		sent, err := e.Drain(q)
		Expect(err).To(HaveOccurred())
		Expect(sent).To(Equal(0))
		Expect(q.Len()).To(Equal(2))

		line, ok := q.PopBypass()
		Expect(ok).To(BeTrue())
		Expect(line).To(Equal("NICK bob"))
	})
})
