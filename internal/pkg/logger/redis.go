package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSlowThreshold = 100 * time.Millisecond

// RedisLoggerHook 挂在go-redis客户端上, 只记录错误和慢命令
type RedisLoggerHook struct{}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{}
}

func (h *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (h *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		if err != nil {
			if !redisErrorWorthLogging(cmd, err) {
				return err
			}
			log.ErrorContext(ctx, "Redis Error",
				log.String("command", cmd.Name()),
				log.String("args", redisCmdArgs(cmd)),
				log.Duration("latency", elapsed),
				log.Any("err", err),
			)
			return err
		}

		if elapsed > redisSlowThreshold {
			log.WarnContext(ctx, "Redis Slow",
				log.String("command", cmd.Name()),
				log.String("args", redisCmdArgs(cmd)),
				log.Duration("latency", elapsed),
			)
		}
		return nil
	}
}

func (h *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil {
			log.ErrorContext(ctx, "Redis Pipeline Error",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return err
	}
}

func redisCmdArgs(cmd redis.Cmder) string {
	name := cmd.Name()
	if name == "auth" || name == "hello" {
		return "[PROTECTED]"
	}
	return fmt.Sprint(cmd.Args())
}

// redis.Nil是正常业务路径(键不存在), setinfo在旧server上必然失败, 都不值得记录
func redisErrorWorthLogging(cmd redis.Cmder, err error) bool {
	if errors.Is(err, redis.Nil) {
		return false
	}
	if cmd.Name() == "client" && strings.Contains(err.Error(), "setinfo") {
		return false
	}
	return true
}
