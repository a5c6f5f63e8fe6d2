package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// IJob scheduled job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

// OnWork one round of a job
type OnWork func() error

// BaseJob cron driven job, overlapping rounds are skipped
type BaseJob struct {
	Cron    *cron.Cron
	OnWork  OnWork
	running int32
}

// Schedule run onWork every interval in location
func (job *BaseJob) Schedule(location string, interval time.Duration, onWork OnWork) error {
	l, err := time.LoadLocation(location)
	if err != nil {
		return err
	}

	job.Cron = cron.New(cron.WithLocation(l))
	job.OnWork = onWork
	if _, err := job.Cron.AddFunc(fmt.Sprintf("@every %s", interval), job.Run); err != nil {
		return err
	}

	return nil
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.running, 0)

	_ = job.OnWork()
}

// Serve start job and block until ctx is done
func Serve(ctx context.Context, job IJob) error {
	if err := job.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return job.Stop()
}
