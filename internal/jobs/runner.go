package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Name() string
	Run()
}

type CronJob interface {
	Schedule() string
	Job
}

// TaskExecutor runs cron jobs on their schedule. A job that is still running
// when its next tick fires is skipped for that tick.
type TaskExecutor struct {
	cron        *cron.Cron
	cronJobs    []CronJob
	runningJobs mapset.Set[string]
	mu          sync.Mutex
}

func NewTaskExecutor(cronJobs ...CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:        cron.New(),
		cronJobs:    cronJobs,
		runningJobs: mapset.NewThreadUnsafeSet[string](),
	}
}

// Run schedules every job and starts the cron in its own goroutine.
func (t *TaskExecutor) Run() error {
	for _, job := range t.cronJobs {
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.run(job)
		})
		if err != nil {
			logrus.Errorf("failed to add task %s to cron: %v", job.Name(), err)
			return err
		}
		logrus.Infof("scheduled task %s %s", job.Name(), job.Schedule())
	}

	t.cron.Start()
	return nil
}

// RunOnce runs every job once in order, without the cron.
func (t *TaskExecutor) RunOnce() {
	for _, job := range t.cronJobs {
		t.run(job)
	}
}

func (t *TaskExecutor) run(job Job) {
	t.mu.Lock()
	if t.runningJobs.Contains(job.Name()) {
		t.mu.Unlock()
		logrus.Warnf("task %s is already running", job.Name())
		return
	}
	t.runningJobs.Add(job.Name())
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.runningJobs.Remove(job.Name())
	}()

	job.Run()
}

// Running reports whether the named job is in progress.
func (t *TaskExecutor) Running(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runningJobs.Contains(name)
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
}
