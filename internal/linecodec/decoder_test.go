package linecodec_test

import (
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/linecodec"
)

var _ = Describe("Decoder", func() {
	It("splits CRLF-delimited lines into messages", func() {
		d := linecodec.NewDecoder(strings.NewReader("PING :abc\r\nNICK bob\r\n"))

		m1, err := d.ReadMessage()
		Expect(err).To(Or(BeNil(), MatchError(io.EOF)))
		Expect(m1.Command).To(Equal("PING"))
		Expect(m1.Trailing).To(Equal("abc"))

		m2, err := d.ReadMessage()
		Expect(err).To(Or(BeNil(), MatchError(io.EOF)))
		Expect(m2.Command).To(Equal("NICK"))
	})

	It("does not kill the stream on a malformed line", func() {
		d := linecodec.NewDecoder(strings.NewReader("\r\nNICK bob\r\n"))

		m1, _ := d.ReadMessage()
		Expect(m1.Command).To(Equal(""))

		m2, _ := d.ReadMessage()
		Expect(m2.Command).To(Equal("NICK"))
	})

	It("returns io.EOF once the stream is exhausted", func() {
		d := linecodec.NewDecoder(strings.NewReader("NICK bob\r\n"))

		_, _ = d.ReadMessage()
		_, err := d.ReadMessage()
		Expect(err).To(Equal(io.EOF))
	})
})
