package telemetry

import "sync"

// Report is a single call made to a Recorder.
type Report struct {
	Id     string
	Params []any
}

// Recorder is an API that keeps every report in memory so tests can make
// assertions on what a component reported.
type Recorder struct {
	mutex    sync.Mutex
	Broken   []Report
	Warnings []Report
	Debug    []Report
	Counts   map[string]int64
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.Broken = append(r.Broken, Report{Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.Warnings = append(r.Warnings, Report{Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.Debug = append(r.Debug, Report{Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.Counts == nil {
		r.Counts = map[string]int64{}
	}
	r.Counts[id] = count
}

// BrokenIds returns the ids of every ReportBroken call in order.
func (r *Recorder) BrokenIds() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	ids := make([]string, len(r.Broken))
	for i, b := range r.Broken {
		ids[i] = b.Id
	}
	return ids
}

// WarningIds returns the ids of every ReportWarning call in order.
func (r *Recorder) WarningIds() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	ids := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		ids[i] = w.Id
	}
	return ids
}
