package plan

import (
	"context"

	"github.com/looplab/fsm"

	"tlog/internal/app/bus"
	"tlog/internal/config/logger"
)

// Run states
const (
	Idle    = "idle"
	Running = "running"
	Passed  = "passed"
	Failed  = "failed"
	Aborted = "aborted"
)

// Run events
const (
	Start = "start"
	Pass  = "pass"
	Fail  = "fail"
	Abort = "abort"
	Reset = "reset"
)

// newRunFSM creates the state machine tracking a plan run and publishes every transition
func newRunFSM(b bus.Bus, log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		Idle,
		fsm.Events{
			{Name: Start, Src: []string{Idle}, Dst: Running},
			{Name: Pass, Src: []string{Running}, Dst: Passed},
			{Name: Fail, Src: []string{Running}, Dst: Failed},
			{Name: Abort, Src: []string{Running}, Dst: Aborted},
			{Name: Reset, Src: []string{Passed, Failed, Aborted}, Dst: Idle},
		},
		fsm.Callbacks{
			"after_event": func(_ context.Context, e *fsm.Event) {
				log.Debug().Msgf("RUN %s → %s (trigger: %s)", e.Src, e.Dst, e.Event)

				b.Publish(bus.Message{
					Type:     bus.EventRunStateChanged,
					Data:     bus.RunStateChanged{From: e.Src, To: e.Dst},
					Critical: true,
				})
			},
		},
	)
}
