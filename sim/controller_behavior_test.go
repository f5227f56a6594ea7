package sim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/sim"
)

var _ = Describe("Controller", func() {
	var (
		board *model.Board
		sched *sim.ManualScheduler
		ctrl  *sim.Controller
	)

	BeforeEach(func() {
		var err error
		board, err = model.NewBoard(model.BoardConfig{Width: 30, Height: 30, CellSize: 5, Density: 1, Seed: 11})
		Expect(err).NotTo(HaveOccurred())
		board.Load(model.MustParseGrid("......\n.OO...\n.OO...\n......\n"))

		sched = sim.NewManualScheduler()
		ctrl = sim.New(board, sim.WithScheduler(sched), sim.WithInterval(50*time.Millisecond))
	})

	Context("when stopped", func() {
		It("schedules nothing", func() {
			Expect(ctrl.Running()).To(BeFalse())
			Expect(sched.Pending()).To(BeZero())
		})

		It("ignores Stop", func() {
			Expect(ctrl.Stop).NotTo(Panic())
			Expect(ctrl.State()).To(Equal(sim.SimulationState{Interval: 50 * time.Millisecond}))
		})

		It("accepts interval changes", func() {
			Expect(ctrl.SetInterval(20 * time.Millisecond)).To(Succeed())
			Expect(ctrl.State().IntervalMs()).To(BeEquivalentTo(20))
		})

		It("steps by hand", func() {
			ctrl.Step()
			Expect(ctrl.State().Generation).To(Equal(1))
			Expect(ctrl.Snapshot().Cells).To(HaveLen(4))
		})
	})

	Context("when running", func() {
		BeforeEach(func() {
			ctrl.Run()
		})

		It("steps immediately once the scheduler fires", func() {
			sched.Advance(0)
			Expect(ctrl.State().Generation).To(Equal(1))
		})

		It("keeps one tick pending", func() {
			sched.Advance(0)
			sched.Advance(200 * time.Millisecond)
			Expect(ctrl.State().Generation).To(Equal(5))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("leaves a stable block unchanged", func() {
			sched.Advance(500 * time.Millisecond)
			Expect(ctrl.Snapshot().Cells).To(Equal([]model.LiveCell{
				{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2},
			}))
		})

		It("sees commands made between ticks", func() {
			sched.Advance(0)
			ctrl.Clear()
			sched.Advance(50 * time.Millisecond)
			snap := ctrl.Snapshot()
			Expect(snap.Cells).To(BeEmpty())
			Expect(snap.State.Generation).To(Equal(1))

			ctrl.Randomize()
			Expect(ctrl.Snapshot().Population()).To(Equal(36))
		})

		It("stops cleanly", func() {
			ctrl.Stop()
			sched.Advance(time.Second)
			Expect(ctrl.Running()).To(BeFalse())
			Expect(ctrl.State().Generation).To(BeZero())
			Expect(sched.Pending()).To(BeZero())
		})

		It("rejects a zero interval and keeps ticking", func() {
			Expect(ctrl.SetInterval(0)).To(MatchError(sim.ErrInvalidInterval))
			sched.Advance(50 * time.Millisecond)
			Expect(ctrl.State().Generation).To(Equal(2))
		})
	})
})
