package core

// A simple, efficient cooperative task scheduler.
//
// The task set is fixed at construction: there is no dynamic task
// creation, no priorities and no preemption. Tasks run to completion in
// list order whenever they come due, so a slow task delays every later
// task in the same pass.

// Task is one independently-timed unit of work driven by the Scheduler.
type Task interface {
	// IntervalUs returns the execution interval in microseconds. It is
	// read on every pass, but tasks are expected to return a constant.
	IntervalUs() uint32

	// Init is called once, before the first Execute.
	Init()

	// Execute is the task body, called at (approximately) the declared
	// interval.
	Execute()
}

// scheduledTask pairs a task with its next-due timestamp. Only the
// scheduler touches nextDue.
type scheduledTask struct {
	task    Task
	nextDue uint64
}

// Scheduler ticks a fixed list of tasks from the main loop.
type Scheduler struct {
	clock *Clock
	tasks []scheduledTask
}

// NewScheduler builds a scheduler over the given task list. The order
// of the list is the order tasks run within a pass.
func NewScheduler(clock *Clock, tasks ...Task) *Scheduler {
	s := &Scheduler{clock: clock, tasks: make([]scheduledTask, len(tasks))}
	for i, t := range tasks {
		s.tasks[i].task = t
	}
	return s
}

// InitAll calls every task's Init once. Call before the first RunAll.
func (s *Scheduler) InitAll() {
	for i := range s.tasks {
		s.tasks[i].task.Init()
	}
}

// RunAll executes every due task once. Call repeatedly from the main
// loop.
//
// The current time is sampled once per pass and shared by all tasks,
// both for the due check and for computing the next due time. A task
// can therefore run late by the cumulative execution time of earlier
// tasks in the same pass; that jitter is accepted in exchange for not
// re-reading the clock per task. Tasks run late, never early.
func (s *Scheduler) RunAll() {
	now := s.clock.NowUs()
	for i := range s.tasks {
		st := &s.tasks[i]
		if now >= st.nextDue {
			st.nextDue = now + uint64(st.task.IntervalUs())
			st.task.Execute()
		}
	}
}
