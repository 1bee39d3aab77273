package regmap_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/regmap"
)

var _ = Describe("Registry[K,V]", func() {
	Describe("Store and Load", func() {
		It("should load a stored value", func() {
			r := regmap.New[string, int]()
			r.Store("a", 1)

			v, ok := r.Load("a")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(1))
		})

		It("should report false for a missing key", func() {
			r := regmap.New[string, int]()

			_, ok := r.Load("missing")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("LoadOrStore", func() {
		It("should store when absent", func() {
			r := regmap.New[string, string]()

			actual, loaded := r.LoadOrStore("srv1", "connecting")
			Expect(loaded).To(BeFalse())
			Expect(actual).To(Equal("connecting"))
		})

		It("should return the existing value when present", func() {
			r := regmap.New[string, string]()
			r.Store("srv1", "connected")

			actual, loaded := r.LoadOrStore("srv1", "connecting")
			Expect(loaded).To(BeTrue())
			Expect(actual).To(Equal("connected"))
		})
	})

	Describe("LoadAndDelete / Delete", func() {
		It("should remove the entry and return its value", func() {
			r := regmap.New[string, int]()
			r.Store("p1", 42)

			v, loaded := r.LoadAndDelete("p1")
			Expect(loaded).To(BeTrue())
			Expect(v).To(Equal(42))
			Expect(r.Has("p1")).To(BeFalse())
		})

		It("Delete should be a no-op for a missing key", func() {
			r := regmap.New[string, int]()
			Expect(func() { r.Delete("missing") }).ToNot(Panic())
		})
	})

	Describe("Walk, Keys, Len", func() {
		It("should enumerate every stored entry", func() {
			r := regmap.New[string, int]()
			r.Store("a", 1)
			r.Store("b", 2)
			r.Store("c", 3)

			Expect(r.Len()).To(Equal(3))
			Expect(r.Keys()).To(ConsistOf("a", "b", "c"))

			sum := 0
			r.Walk(func(_ string, v int) bool {
				sum += v
				return true
			})
			Expect(sum).To(Equal(6))
		})

		It("should stop early when the callback returns false", func() {
			r := regmap.New[string, int]()
			for i := 0; i < 10; i++ {
				r.Store(string(rune('a'+i)), i)
			}

			count := 0
			r.Walk(func(_ string, _ int) bool {
				count++
				return count < 5
			})

			Expect(count).To(Equal(5))
		})
	})

	Describe("insertion order", func() {
		It("returns Keys in the order entries were first stored", func() {
			r := regmap.New[string, int]()
			r.Store("freenode", 1)
			r.Store("irc", 2)
			r.Store("oftc", 3)

			Expect(r.Keys()).To(Equal([]string{"freenode", "irc", "oftc"}))
		})

		It("does not reorder a key re-stored with a new value", func() {
			r := regmap.New[string, int]()
			r.Store("irc", 1)
			r.Store("freenode", 2)
			r.Store("irc", 99)

			Expect(r.Keys()).To(Equal([]string{"irc", "freenode"}))
		})

		It("preserves order across Walk", func() {
			r := regmap.New[string, int]()
			r.Store("c", 3)
			r.Store("a", 1)
			r.Store("b", 2)

			var seen []string
			r.Walk(func(k string, _ int) bool {
				seen = append(seen, k)
				return true
			})

			Expect(seen).To(Equal([]string{"c", "a", "b"}))
		})

		It("removes a deleted key from the order without disturbing the rest", func() {
			r := regmap.New[string, int]()
			r.Store("a", 1)
			r.Store("b", 2)
			r.Store("c", 3)
			r.Delete("b")

			Expect(r.Keys()).To(Equal([]string{"a", "c"}))
		})
	})

	Describe("concurrent access", func() {
		It("should not race under concurrent store/load", func() {
			r := regmap.New[int, int]()
			var wg sync.WaitGroup

			for i := 0; i < 100; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					r.Store(idx, idx*2)
				}(i)
			}

			for i := 0; i < 100; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					_, _ = r.Load(idx)
				}(i)
			}

			wg.Wait()
			Expect(r.Len()).To(Equal(100))
		})
	})
})
