package availability_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/engram-memory/engram/pkg/availability"
)

// countingProber records how many health probes were issued.
type countingProber struct {
	healthy bool
	calls   int
}

func (p *countingProber) Health(_ context.Context) bool {
	p.calls++
	return p.healthy
}

var _ = Describe("Gate", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("probes once and caches a reachable verdict", func() {
		prober := &countingProber{healthy: true}
		gate := availability.NewGate(availability.Config{}, prober)

		Expect(gate.Available(ctx)).To(BeTrue())
		Expect(gate.Available(ctx)).To(BeTrue())
		Expect(prober.calls).To(Equal(1))
	})

	It("probes once and caches an unreachable verdict", func() {
		prober := &countingProber{healthy: false}
		gate := availability.NewGate(availability.Config{}, prober)

		Expect(gate.Available(ctx)).To(BeFalse())
		Expect(gate.Available(ctx)).To(BeFalse())
		Expect(prober.calls).To(Equal(1))
	})

	It("holds a stale verdict with a zero recheck interval", func() {
		prober := &countingProber{healthy: false}
		gate := availability.NewGate(availability.Config{}, prober)

		Expect(gate.Available(ctx)).To(BeFalse())

		// Backend comes up mid-process; the cached verdict does not notice.
		prober.healthy = true
		Expect(gate.Available(ctx)).To(BeFalse())
		Expect(prober.calls).To(Equal(1))
	})

	It("probes again after Reset", func() {
		prober := &countingProber{healthy: false}
		gate := availability.NewGate(availability.Config{}, prober)

		Expect(gate.Available(ctx)).To(BeFalse())

		prober.healthy = true
		gate.Reset()
		Expect(gate.Available(ctx)).To(BeTrue())
		Expect(prober.calls).To(Equal(2))
	})
})
