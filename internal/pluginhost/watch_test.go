package pluginhost_test

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/eventloop"
	"github.com/sabouaram/irccd/internal/pluginhost"
)

var _ = Describe("Watcher", func() {
	var (
		dir  string
		loop *eventloop.Loop
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "pluginhost-watch")
		Expect(err).To(BeNil())

		loop = eventloop.New()
		go loop.Run()
	})

	AfterEach(func() {
		loop.Stop()
		_ = os.RemoveAll(dir)
	})

	It("reports a newly created plugin file", func() {
		var mu sync.Mutex
		var found []string

		w, err := pluginhost.NewWatcher(dir, loop, testLogger(), func(path string, reload bool) {
			mu.Lock()
			defer mu.Unlock()
			found = append(found, path)
		})
		Expect(err).To(BeNil())
		defer w.Close()

		Expect(os.WriteFile(filepath.Join(dir, "echo.so"), []byte("stub"), 0o644)).To(Succeed())

		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), found...)
		}, 2*time.Second).Should(ContainElement(filepath.Join(dir, "echo.so")))
	})

	It("ignores files with an unrecognized extension", func() {
		var mu sync.Mutex
		var found []string

		w, err := pluginhost.NewWatcher(dir, loop, testLogger(), func(path string, reload bool) {
			mu.Lock()
			defer mu.Unlock()
			found = append(found, path)
		})
		Expect(err).To(BeNil())
		defer w.Close()

		Expect(os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o644)).To(Succeed())

		Consistently(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), found...)
		}, 200*time.Millisecond).Should(BeEmpty())
	})
})
