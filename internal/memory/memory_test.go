package memory

import (
	"math"
	"sync"
	"testing"

	. "github.com/onsi/gomega"

	"go-calculator/internal/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(storage.NewMemoryKV())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return s
}

func TestStoreAddRecall(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)

	g.Expect(s.StoreAt(0, 5)).To(Succeed())
	g.Expect(s.AddAt(0, 3)).To(Succeed())
	g.Expect(s.RecallAt(0)).To(Equal(8.0))

	g.Expect(s.SubtractAt(0, 10)).To(Succeed())
	g.Expect(s.RecallAt(0)).To(Equal(-2.0))
}

func TestRecallMissingSlotIsZero(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)

	g.Expect(s.RecallAt(9)).To(Equal(0.0))
	g.Expect(s.RecallAt(-1)).To(Equal(0.0))
	g.Expect(s.Recall()).To(Equal(0.0))
}

func TestWritesPadUpToCapacity(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)

	g.Expect(s.AddAt(3, 7)).To(Succeed())
	g.Expect(s.Slots()).To(Equal([]Slot{{}, {}, {}, {Value: 7}}))

	g.Expect(s.SubtractAt(Capacity-1, 1)).To(Succeed())
	g.Expect(s.Len()).To(Equal(Capacity))
	g.Expect(s.RecallAt(Capacity - 1)).To(Equal(-1.0))
}

func TestWritesBeyondCapacityAreIgnored(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)

	g.Expect(s.StoreAt(Capacity, 1)).To(Succeed())
	g.Expect(s.StoreAt(-1, 1)).To(Succeed())
	g.Expect(s.Len()).To(Equal(0))
}

func TestActiveSlotDefaults(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)

	g.Expect(s.Store(2)).To(Succeed())
	g.Expect(s.Add(3)).To(Succeed())
	g.Expect(s.RecallAt(0)).To(Equal(5.0))

	idx, ok, err := s.NewSlot(10)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())
	g.Expect(idx).To(Equal(1))
	g.Expect(s.Active()).To(Equal(1))

	g.Expect(s.Subtract(4)).To(Succeed())
	g.Expect(s.Recall()).To(Equal(6.0))

	g.Expect(s.Select(0)).To(BeTrue())
	g.Expect(s.Select(5)).To(BeFalse())
	g.Expect(s.Recall()).To(Equal(5.0))
}

func TestNewSlotRespectsCapacity(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)

	for i := 0; i < Capacity; i++ {
		_, ok, err := s.NewSlot(float64(i))
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(ok).To(BeTrue())
	}
	_, ok, err := s.NewSlot(99)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())
	g.Expect(s.Len()).To(Equal(Capacity))
}

func TestClearAtShiftsAndClampsActive(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)

	for _, v := range []float64{1, 2, 3} {
		_, _, err := s.NewSlot(v)
		g.Expect(err).NotTo(HaveOccurred())
	}
	g.Expect(s.Active()).To(Equal(2))

	g.Expect(s.ClearAt(0)).To(Succeed())
	g.Expect(s.Slots()).To(Equal([]Slot{{Value: 2}, {Value: 3}}))
	g.Expect(s.Active()).To(Equal(1))

	g.Expect(s.ClearAt(1)).To(Succeed())
	g.Expect(s.Active()).To(Equal(0))

	g.Expect(s.ClearAt(7)).To(Succeed())
	g.Expect(s.Len()).To(Equal(1))

	g.Expect(s.ClearAll()).To(Succeed())
	g.Expect(s.Slots()).To(BeEmpty())
	g.Expect(s.Active()).To(Equal(0))
}

func TestLabelsAndStoreOverwrite(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)

	g.Expect(s.SetLabel(1, "tax")).To(Succeed())
	g.Expect(s.Slots()).To(Equal([]Slot{{}, {Label: "tax"}}))

	g.Expect(s.AddAt(1, 2)).To(Succeed())
	g.Expect(s.Slots()[1]).To(Equal(Slot{Value: 2, Label: "tax"}))

	g.Expect(s.StoreAt(1, 9)).To(Succeed())
	g.Expect(s.Slots()[1]).To(Equal(Slot{Value: 9}))
}

func TestPersistsThroughKV(t *testing.T) {
	g := NewWithT(t)
	kv := storage.NewMemoryKV()

	s, err := NewStore(kv)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.StoreAt(2, 4.5)).To(Succeed())

	reloaded, err := NewStore(kv)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(reloaded.RecallAt(2)).To(Equal(4.5))
	g.Expect(reloaded.Len()).To(Equal(3))
}

func TestFormat(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Format(1.5)).To(Equal("1.5"))
	g.Expect(Format(1.0 / 3)).To(Equal("0.33333333"))
	g.Expect(Format(2)).To(Equal("2"))
	g.Expect(Format(math.Pi * 1000)).To(Equal("3141.59265359"))
}

func TestActiveSlotResolvesAtCallTime(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)

	_, _, err := s.NewSlot(1)
	g.Expect(err).NotTo(HaveOccurred())
	_, _, err = s.NewSlot(2)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(s.Select(0)).To(BeTrue())
	g.Expect(s.AddAt(ActiveSlot, 10)).To(Succeed())
	g.Expect(s.RecallAt(ActiveSlot)).To(Equal(11.0))
	g.Expect(s.RecallAt(1)).To(Equal(2.0))

	g.Expect(s.Select(1)).To(BeTrue())
	g.Expect(s.SetLabel(ActiveSlot, "rent")).To(Succeed())
	g.Expect(s.ClearAt(ActiveSlot)).To(Succeed())
	g.Expect(s.Slots()).To(Equal([]Slot{{Value: 11}}))
	g.Expect(s.Active()).To(Equal(0))
}

func TestConcurrentSelectDoesNotMisdirectWrites(t *testing.T) {
	g := NewWithT(t)
	s := newStore(t)
	g.Expect(s.StoreAt(1, 0)).To(Succeed())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 500 {
			s.Select(i % 2)
		}
	}()
	go func() {
		defer wg.Done()
		for range 500 {
			_ = s.Add(1)
		}
	}()
	wg.Wait()

	g.Expect(s.RecallAt(0) + s.RecallAt(1)).To(Equal(500.0))
	g.Expect(s.Len()).To(Equal(2))
}
