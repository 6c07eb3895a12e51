package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"garden-go/pkg/redis_limiter"
)

// OwnershipGuard 串行化同一用户的植物注册，防止拥有列表被并发覆盖
type OwnershipGuard interface {
	Lock(ctx context.Context, userID uint) (unlock func(), err error)
}

// LocalGuard 进程内按用户加锁
type LocalGuard struct {
	mu    sync.Mutex
	slots map[uint]*localSlot
}

// localSlot refs 为持有和等待该锁的请求数，归零时从map中删除
type localSlot struct {
	ch   chan struct{}
	refs int
}

// NewLocalGuard 创建进程内锁
func NewLocalGuard() *LocalGuard {
	return &LocalGuard{slots: make(map[uint]*localSlot)}
}

// Lock 等待该用户的锁，ctx取消时放弃
func (g *LocalGuard) Lock(ctx context.Context, userID uint) (func(), error) {
	g.mu.Lock()
	slot, ok := g.slots[userID]
	if !ok {
		slot = &localSlot{ch: make(chan struct{}, 1)}
		g.slots[userID] = slot
	}
	slot.refs++
	g.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.ch
				g.release(userID, slot)
			})
		}, nil
	case <-ctx.Done():
		g.release(userID, slot)
		return nil, fmt.Errorf("%w: %v", ErrRegistrationBusy, ctx.Err())
	}
}

func (g *LocalGuard) release(userID uint, slot *localSlot) {
	g.mu.Lock()
	defer g.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(g.slots, userID)
	}
}

// size 当前保留的用户槽位数
func (g *LocalGuard) size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.slots)
}

// RedisGuard 基于Redis槽位的跨进程锁
type RedisGuard struct {
	limiter  *redis_limiter.RedisLimiter
	wait     time.Duration
	interval time.Duration
}

// NewRedisGuard 创建Redis锁，limiter的最大并发数应为1
func NewRedisGuard(limiter *redis_limiter.RedisLimiter, wait time.Duration) *RedisGuard {
	return &RedisGuard{
		limiter:  limiter,
		wait:     wait,
		interval: 50 * time.Millisecond,
	}
}

// Lock 轮询获取槽位，超过等待时间返回 ErrRegistrationBusy
func (g *RedisGuard) Lock(ctx context.Context, userID uint) (func(), error) {
	key := strconv.FormatUint(uint64(userID), 10)

	ctx, cancel := context.WithTimeout(ctx, g.wait)
	defer cancel()

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		err := g.limiter.Acquire(ctx, key)
		if err == nil {
			return func() { g.limiter.Release(context.Background(), key) }, nil
		}
		if ctx.Err() != nil {
			return nil, g.busyError(userID, key)
		}
		if !errors.Is(err, redis_limiter.ErrLimitReached) {
			return nil, fmt.Errorf("获取注册锁失败: %w", err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, g.busyError(userID, key)
		}
	}
}

// busyError 附带当前槽位占用情况
func (g *RedisGuard) busyError(userID uint, key string) error {
	current, err := g.limiter.GetCurrent(context.Background(), key)
	if err != nil {
		return ErrRegistrationBusy
	}
	return fmt.Errorf("%w: %d/%d registrations running for user %d", ErrRegistrationBusy, current, g.limiter.GetMaxConcurrent(), userID)
}
