package launcher

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

type fakeApp struct {
	ran int32
}

func (a *fakeApp) Run(l *Launcher) error {
	atomic.AddInt32(&a.ran, 1)
	<-l.Context.Done()
	return nil
}

func TestLauncherRunsEveryAppAndWaitsForCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	a1, a2 := &fakeApp{}, &fakeApp{}

	done := make(chan struct{})
	go func() {
		New(
			WithLogger(mlog.NewNoOpLogger()),
			WithContext(ctx),
			RunApp("one", a1),
			RunApp("two", a2),
		).Run()
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&a1.ran) == 1 && atomic.LoadInt32(&a2.ran) == 1
	}, time.Second, time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestLauncherDefaultsToBackgroundContext(t *testing.T) {
	l := New(WithLogger(mlog.NewNoOpLogger()))
	assert.NotNil(t, l.Context)
}
