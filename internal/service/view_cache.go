package service

import (
	"community/internal/repository"
	"context"
	log "log/slog"
	"math"
	"sync"
	"sync/atomic"
)

// drainedMark 刷盘时写入旧计数器的哨兵值。Record 在旧计数器上加一后
// 得到的结果必然为负，据此识别条目已被摘除并换新条目重试，
// 保证刷盘期间到达的浏览既不丢失也不重复计数
const drainedMark = math.MinInt64

// ViewCountCache 浏览量写回缓存：浏览先累加在内存里，由定时任务批量
// 刷入 post_stats，读侧始终取 存储值 + Peek 的增量。
// 每个帖子一个原子计数器，互不相关的帖子之间没有任何锁竞争
type ViewCountCache struct {
	statsRepo repository.PostStatsRepo

	// key: postID(uint64) -> *atomic.Int64
	deltas sync.Map
}

func NewViewCountCache(statsRepo repository.PostStatsRepo) *ViewCountCache {
	return &ViewCountCache{statsRepo: statsRepo}
}

// Record 记录一次浏览，返回该帖子当前未刷盘的增量
func (c *ViewCountCache) Record(postID uint64) int64 {
	for {
		if v, ok := c.deltas.Load(postID); ok {
			n := v.(*atomic.Int64).Add(1)
			if n > 0 {
				return n
			}
			// 撞上正在刷盘的旧条目，等它被摘除后换新条目
			continue
		}
		fresh := &atomic.Int64{}
		fresh.Store(1)
		if _, loaded := c.deltas.LoadOrStore(postID, fresh); !loaded {
			return 1
		}
	}
}

// Peek 只读当前增量，不计浏览
func (c *ViewCountCache) Peek(postID uint64) int64 {
	if v, ok := c.deltas.Load(postID); ok {
		if n := v.(*atomic.Int64).Load(); n > 0 {
			return n
		}
	}
	return 0
}

// Flush 把所有增量刷入存储。逐条目先快照再摘除：
//   - 数据库报错：增量放回缓存，下个周期重试，整轮继续不中断
//   - 影响行数为 0：统计行已随帖子删除，增量丢弃
//
// 定时任务和优雅退出共用此方法
func (c *ViewCountCache) Flush(ctx context.Context) {
	var flushed, requeued, dropped int

	c.deltas.Range(func(key, value any) bool {
		postID := key.(uint64)
		delta := value.(*atomic.Int64).Swap(drainedMark)
		c.deltas.Delete(postID)

		if delta <= 0 {
			// 别的刷盘已经处理过这个条目
			return true
		}

		rows, err := c.statsRepo.IncrementView(ctx, postID, delta)
		switch {
		case err != nil:
			c.requeue(postID, delta)
			requeued++
			log.ErrorContext(ctx, "浏览量刷盘失败，留待下轮", "post_id", postID, "delta", delta, "err", err)
		case rows == 0:
			dropped++
			log.WarnContext(ctx, "统计行不存在，丢弃浏览增量", "post_id", postID, "delta", delta)
		default:
			flushed++
		}
		return true
	})

	if flushed+requeued+dropped > 0 {
		log.InfoContext(ctx, "浏览量刷盘完成",
			"flushed", flushed,
			"requeued", requeued,
			"dropped", dropped)
	}
}

// requeue 把刷盘失败的增量合并回缓存，与并发 Record 安全共存
func (c *ViewCountCache) requeue(postID uint64, delta int64) {
	for {
		if v, ok := c.deltas.Load(postID); ok {
			if v.(*atomic.Int64).Add(delta) > 0 {
				return
			}
			continue
		}
		fresh := &atomic.Int64{}
		fresh.Store(delta)
		if _, loaded := c.deltas.LoadOrStore(postID, fresh); !loaded {
			return
		}
	}
}
