package health

import (
	"sync"
	"time"
)

// State 定义了存储健康状态的枚举类型
type State int

const (
	StateHealthy State = iota
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateHealthy:
		return "healthy"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Snapshot 是某一时刻的健康状态
type Snapshot struct {
	State     State
	LastError string
	CheckedAt time.Time
	// Failures 是连续失败的检查次数
	Failures int
}

// statusManager 负责线程安全地管理和提供存储的健康状态。
type statusManager struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

func newStatusManager() *statusManager {
	return &statusManager{snapshot: Snapshot{State: StateHealthy}}
}

// Get 返回当前状态的副本。
func (sm *statusManager) Get() Snapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.snapshot
}

// Assess 根据一次检查结果更新状态，返回状态是否发生了变化。
func (sm *statusManager) Assess(err error, at time.Time) (changed bool, next Snapshot) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	prev := sm.snapshot.State
	sm.snapshot.CheckedAt = at
	if err != nil {
		sm.snapshot.State = StateDegraded
		sm.snapshot.LastError = err.Error()
		sm.snapshot.Failures++
	} else {
		sm.snapshot.State = StateHealthy
		sm.snapshot.LastError = ""
		sm.snapshot.Failures = 0
	}
	return prev != sm.snapshot.State, sm.snapshot
}
