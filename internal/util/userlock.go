package util

import "sync"

// UserLocker 按用户维度的互斥锁。同一用户的所有金币变更操作
// （奖励、签到、兑换、取消、充值）都必须在持锁状态下执行，
// 保证"查余额-改余额-记流水"不会与并发请求交错；
// 不同用户之间互不影响，可完全并行。
type UserLocker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewUserLocker() *UserLocker {
	return &UserLocker{locks: make(map[uint]*sync.Mutex)}
}

func (l *UserLocker) lockFor(userID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}

// Lock 获取用户锁，返回解锁函数
func (l *UserLocker) Lock(userID uint) func() {
	m := l.lockFor(userID)
	m.Lock()
	return m.Unlock
}
