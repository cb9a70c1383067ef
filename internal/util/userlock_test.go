package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLockerSerializesSameUser(t *testing.T) {
	locker := NewUserLocker()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock(1)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestUserLockerIndependentUsers(t *testing.T) {
	locker := NewUserLocker()

	// 持有用户1的锁不阻塞用户2
	unlock1 := locker.Lock(1)
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2 := locker.Lock(2)
		unlock2()
		close(done)
	}()
	<-done
}
