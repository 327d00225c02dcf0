package planner

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/clusterkit/nodesplit/internal/logging"
	"github.com/clusterkit/nodesplit/pkg/splitter"
	"github.com/clusterkit/nodesplit/pkg/topology"
)

// Three leaf switches: leaf-a and leaf-b share spine-1, leaf-c hangs off
// spine-2.
const fixtureTopology = `SwitchName=leaf-a Level=0 Switches=spine-1 Nodes=alpha-[01-05]
SwitchName=leaf-b Level=0 Switches=spine-1 Nodes=beta-[01-04]
SwitchName=leaf-c Level=0 Switches=spine-2 Nodes=gamma-[01-03]
`

var _ = Describe("Plan", func() {
	var (
		ctx       context.Context
		p         *Planner
		model     *topology.Model
		allocated []string
	)

	BeforeEach(func() {
		ctx = context.Background()
		p = New(logging.NewTestLogger())

		var err error
		model, err = topology.Build(fixtureTopology)
		Expect(err).NotTo(HaveOccurred())

		allocated = []string{
			"alpha-01", "alpha-02", "alpha-03", "alpha-04", "alpha-05",
			"beta-01", "beta-02", "beta-03", "beta-04",
			"gamma-01", "gamma-02", "gamma-03",
		}
	})

	Context("with a satisfiable request", func() {
		It("concentrates workload A under the compact strategy", func() {
			result, err := p.Plan(ctx, allocated, model, Request{
				Strategy:       splitter.CompactStrategy,
				WorkloadANodes: 6,
				WorkloadBNodes: 4,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Split.WorkloadA).To(Equal([]string{
				"alpha-01", "beta-01", "beta-02", "beta-03", "beta-04", "gamma-01",
			}))
			Expect(result.Split.WorkloadB).To(Equal([]string{
				"alpha-02", "alpha-03", "alpha-04", "alpha-05",
			}))
			Expect(result.MissingFromTopology).To(BeZero())
			Expect(result.WorkloadASwitches).To(Equal([]string{"leaf-a", "leaf-b", "leaf-c"}))
			Expect(result.WorkloadBSwitches).To(Equal([]string{"leaf-a"}))
		})

		It("spreads both workloads under the even strategy", func() {
			result, err := p.Plan(ctx, allocated, model, Request{
				Strategy:       splitter.EvenStrategy,
				WorkloadANodes: 6,
				WorkloadBNodes: 6,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Split.WorkloadA).To(Equal([]string{
				"alpha-01", "alpha-02", "alpha-03", "beta-01", "beta-02", "gamma-01",
			}))
			Expect(result.Split.WorkloadB).To(Equal([]string{
				"alpha-04", "alpha-05", "beta-03", "beta-04", "gamma-02", "gamma-03",
			}))
			Expect(result.WorkloadASwitches).To(Equal([]string{"leaf-a", "leaf-b", "leaf-c"}))
			Expect(result.WorkloadBSwitches).To(Equal([]string{"leaf-a", "leaf-b", "leaf-c"}))
		})

		It("keeps the workloads disjoint and within the allocation", func() {
			result, err := p.Plan(ctx, allocated, model, Request{
				Strategy:       splitter.CompactStrategy,
				WorkloadANodes: 7,
				WorkloadBNodes: 5,
			})
			Expect(err).NotTo(HaveOccurred())

			a := sets.New(result.Split.WorkloadA...)
			b := sets.New(result.Split.WorkloadB...)
			Expect(a.Intersection(b).UnsortedList()).To(BeEmpty())
			Expect(sets.New(allocated...).IsSuperset(a.Union(b))).To(BeTrue())
		})
	})

	Context("when allocated nodes are missing from the topology", func() {
		It("plans without them and counts them once", func() {
			withGhost := append([]string{"ghost-1"}, allocated[:5]...)
			withGhost = append(withGhost, "ghost-1")

			result, err := p.Plan(ctx, withGhost, model, Request{
				Strategy:       splitter.CompactStrategy,
				WorkloadANodes: 3,
				WorkloadBNodes: 2,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.MissingFromTopology).To(Equal(1))
			Expect(result.Split.WorkloadA).To(Equal([]string{"alpha-01", "alpha-02", "alpha-03"}))
			Expect(result.Split.WorkloadB).To(Equal([]string{"alpha-04", "alpha-05"}))
			Expect(result.WorkloadBSwitches).To(Equal([]string{"leaf-a"}))
		})
	})

	Context("when the allocation cannot cover the request", func() {
		It("fails the precondition", func() {
			_, err := p.Plan(ctx, allocated, model, Request{
				Strategy:       splitter.CompactStrategy,
				WorkloadANodes: 9,
				WorkloadBNodes: 4,
			})
			Expect(err).To(MatchError(ErrInsufficientNodes))
		})

		It("counts raw allocation entries, duplicates included", func() {
			duplicated := []string{
				"alpha-01", "alpha-01", "alpha-02", "alpha-02", "alpha-03", "alpha-03",
			}

			// Six raw entries satisfy the precondition, but only three
			// distinct nodes reach the strategy.
			_, err := p.Plan(ctx, duplicated, model, Request{
				Strategy:       splitter.CompactStrategy,
				WorkloadANodes: 2,
				WorkloadBNodes: 2,
			})
			Expect(err).To(MatchError(ErrQuotaMismatch))
		})
	})

	Context("when the strategy cannot hit the quotas", func() {
		It("rejects the oversized workload B of an even split", func() {
			uneven := append(append([]string{}, allocated[:5]...), "gamma-01", "gamma-02", "gamma-03")

			_, err := p.Plan(ctx, uneven, model, Request{
				Strategy:       splitter.EvenStrategy,
				WorkloadANodes: 2,
				WorkloadBNodes: 2,
			})
			Expect(err).To(MatchError(ErrQuotaMismatch))
		})
	})

	Context("with an invalid request", func() {
		It("rejects negative workload sizes", func() {
			_, err := p.Plan(ctx, allocated, model, Request{
				Strategy:       splitter.CompactStrategy,
				WorkloadANodes: -1,
				WorkloadBNodes: 3,
			})
			Expect(err).To(MatchError(ContainSubstring("non-negative")))
		})

		It("rejects an unsupported strategy value", func() {
			_, err := p.Plan(ctx, allocated, model, Request{
				Strategy:       splitter.Strategy(9),
				WorkloadANodes: 1,
				WorkloadBNodes: 1,
			})
			Expect(err).To(MatchError(ContainSubstring("unsupported split strategy")))
		})
	})

	Context("with an empty allocation", func() {
		It("accepts a zero request", func() {
			result, err := p.Plan(ctx, nil, model, Request{
				Strategy:       splitter.EvenStrategy,
				WorkloadANodes: 0,
				WorkloadBNodes: 0,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Split.WorkloadA).To(BeEmpty())
			Expect(result.Split.WorkloadB).To(BeEmpty())
			Expect(result.MissingFromTopology).To(BeZero())
			Expect(result.WorkloadASwitches).To(BeEmpty())
			Expect(result.WorkloadBSwitches).To(BeEmpty())
		})
	})
})
