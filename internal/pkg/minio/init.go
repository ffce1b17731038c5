package minio

import (
	"community/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// MainBucket 正式图片存储桶
	MainBucket string
	// TempBucket 临时上传桶，未被帖子引用的对象由生命周期规则自动清理
	TempBucket string
)

// Init 初始化 MinIO 客户端
func Init() error {
	cfg := config.Cfg.MinIO

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	_, err = client.ListBuckets(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	Client = client
	MainBucket = cfg.MainBucket
	TempBucket = cfg.TempBucket
	return ensureTempBucketLifecycle(ctx)
}

func ensureTempBucketLifecycle(ctx context.Context) error {
	lcConfig, err := Client.GetBucketLifecycle(ctx, TempBucket)
	if err != nil {
		lcConfig = lifecycle.NewConfiguration()
	}

	const targetDays = 1
	hasTargetRule := false
	for _, rule := range lcConfig.Rules {
		// 判定条件：状态开启 + 全桶匹配(无Prefix) + 过期天数为1
		if rule.Status == "Enabled" &&
			rule.Expiration.Days == targetDays &&
			rule.RuleFilter.Prefix == "" {
			hasTargetRule = true
			log.Info("检测到已存在兼容的过期策略", "ruleID", rule.ID)
			break
		}
	}

	if !hasTargetRule {
		newRule := lifecycle.Rule{
			ID:     "SystemAutoDeleteRule",
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: targetDays,
			},
		}
		lcConfig.Rules = append(lcConfig.Rules, newRule)

		err = Client.SetBucketLifecycle(ctx, TempBucket, lcConfig)
		if err != nil {
			return fmt.Errorf("设置生命周期失败: %w", err)
		}
		log.Info("已自动补全 TempBucket 的 1 天过期策略")
	}

	return nil
}
