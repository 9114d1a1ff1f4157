package statemachine_test

import (
	"fmt"
	"testing"

	"github.com/pickleRick23/finite-state-machine/pkg/statemachine"
)

func BenchmarkMachine_Trigger(b *testing.B) {
	m := statemachine.MustNew(newPlayerConfig())

	b.ResetTimer()

	for b.Loop() {
		_ = m.Trigger("start")
		_ = m.Trigger("stop")
	}
}

func BenchmarkMachine_TriggerWithHistoryLimit(b *testing.B) {
	m := statemachine.MustNew(newPlayerConfig(), statemachine.WithHistoryLimit(64))

	b.ResetTimer()

	for b.Loop() {
		_ = m.Trigger("start")
		_ = m.Trigger("stop")
	}
}

func BenchmarkMachine_UndoRedo(b *testing.B) {
	m := statemachine.MustNew(newPlayerConfig())
	_ = m.Trigger("start")
	_ = m.Trigger("pause")

	b.ResetTimer()

	for b.Loop() {
		m.Undo()
		m.Redo()
	}
}

func BenchmarkMachine_StatesFor(b *testing.B) {
	cfg := statemachine.NewConfig("state0")
	for i := range 10 {
		transitions := statemachine.Transitions{}
		for j := range 5 {
			transitions[fmt.Sprintf("event%d", j)] = fmt.Sprintf("state%d", (i+j+1)%10)
		}
		cfg.AddState(fmt.Sprintf("state%d", i), transitions)
	}
	m := statemachine.MustNew(cfg)

	b.ResetTimer()

	for b.Loop() {
		_ = m.StatesFor("event3")
	}
}

func BenchmarkNew(b *testing.B) {
	cfg := newPlayerConfig()

	for b.Loop() {
		_ = statemachine.MustNew(cfg)
	}
}
