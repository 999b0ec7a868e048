package logs

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Collector buffers log output so it can be printed after the real output is
// done. It is also a logrus hook counting warnings and worse.
type Collector struct {
	lock     sync.Mutex
	buffer   strings.Builder
	problems int
}

// StartCollecting routes all logrus output into a new Collector, replacing any
// previous one.
func StartCollecting() *Collector {
	collector := &Collector{}
	log.SetOutput(collector)
	log.StandardLogger().ReplaceHooks(log.LevelHooks{})
	log.AddHook(collector)
	return collector
}

func (c *Collector) Write(p []byte) (n int, err error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.buffer.Write(p)
}

func (c *Collector) String() string {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.buffer.String()
}

func (c *Collector) Levels() []log.Level {
	return []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.WarnLevel}
}

func (c *Collector) Fire(_ *log.Entry) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.problems++
	return nil
}

// HasProblems is true if anything was logged at warning level or above.
func (c *Collector) HasProblems() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.problems > 0
}
